package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "run.json", `{
			"parallel": true,
			"workers": 8,
			"verbose": true,
			"catalog_db": "catalog.db",
			"results_db": "results.db",
			"listen": ":9090"
		}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.GetParallel())
		assert.Equal(t, 8, cfg.GetWorkers())
		assert.True(t, cfg.GetVerbose())
		assert.Equal(t, "catalog.db", cfg.GetCatalogDB())
		assert.Equal(t, "results.db", cfg.GetResultsDB())
		assert.Equal(t, ":9090", cfg.GetListen())
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "partial.json", `{"parallel": true}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.GetParallel())
		assert.Equal(t, DefaultWorkers, cfg.GetWorkers())
		assert.Equal(t, DefaultVerbose, cfg.GetVerbose())
		assert.Equal(t, DefaultListen, cfg.GetListen())
		assert.Equal(t, DefaultMigrations, cfg.GetMigrations())
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "run.yaml", `parallel: true`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "broken.json", `{"parallel": `)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects negative workers", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "neg.json", `{"workers": -1}`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestGettersOnNil(t *testing.T) {
	t.Parallel()

	var cfg *RunConfig
	assert.Equal(t, DefaultParallel, cfg.GetParallel())
	assert.Equal(t, DefaultWorkers, cfg.GetWorkers())
	assert.Equal(t, DefaultVerbose, cfg.GetVerbose())
	assert.Equal(t, DefaultCatalogDB, cfg.GetCatalogDB())
	assert.Equal(t, DefaultResultsDB, cfg.GetResultsDB())
	assert.Equal(t, DefaultListen, cfg.GetListen())
}
