// Package storetest holds behavior checks every store.KV backend must pass.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/store"
)

// Run exercises kv through the port contract.
func Run(t *testing.T, kv store.KV) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := kv.Get("nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(store.KeyTodos, `[{"id":1,"text":"Buy milk"}]`))
		v, ok, err := kv.Get(store.KeyTodos)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1,"text":"Buy milk"}]`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(store.KeyGroups, `["General"]`))
		require.NoError(t, kv.Set(store.KeyGroups, `["General","Work"]`))
		v, ok, err := kv.Get(store.KeyGroups)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `["General","Work"]`, v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, kv.Set(store.KeyCollapsed, `{"Work":true}`))
		require.NoError(t, kv.Set(store.KeyEmotionHistory, `[]`))
		v, _, err := kv.Get(store.KeyCollapsed)
		require.NoError(t, err)
		assert.Equal(t, `{"Work":true}`, v)
	})

	t.Run("unicode value", func(t *testing.T) {
		require.NoError(t, kv.Set(store.KeyTodos, `[{"id":2,"text":"café ☕"}]`))
		v, _, err := kv.Get(store.KeyTodos)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":2,"text":"café ☕"}]`, v)
	})
}
