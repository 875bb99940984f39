package badgerstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/storetest"
)

func TestBadgerInMemory(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()
	storetest.Run(t, s)
}

func TestBadgerReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(store.KeyEmotionHistory, `[{"emotion":"Happy","type":"good","timestamp":"2025-01-01T00:00:00.000Z"}]`))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()
	v, ok, err := s2.Get(store.KeyEmotionHistory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, v, `"Happy"`)
}
