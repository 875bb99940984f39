package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
)

func testConfig(t *testing.T, backend string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend = backend
	cfg.DataDir = t.TempDir()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestOpenEveryBackend(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendBadger, config.BackendSQLite, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			a, err := Open(cfg, nil)
			require.NoError(t, err)

			_, err = a.Todos.Add("Buy milk", "")
			require.NoError(t, err)
			a.Mood.SelectEmotion("Happy", model.Good)
			_, err = a.Mood.Submit()
			require.NoError(t, err)
			require.NoError(t, a.Close())

			if backend == config.BackendMemory {
				return
			}
			again, err := Open(cfg, nil)
			require.NoError(t, err)
			defer again.Close()
			assert.Len(t, again.Todos.Items(), 1)
			assert.Len(t, again.Mood.History(), 1)
		})
	}
}

func TestDeletePolicyFromConfig(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.DeletePolicy = "reassign"
	a, err := Open(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Todos.Add("w", "Work")
	require.NoError(t, err)
	ok, err := a.Todos.DeleteGroup("Work")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, a.Todos.GroupItems(model.DefaultGroup), 1)
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = "redis"
	_, err := Open(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
