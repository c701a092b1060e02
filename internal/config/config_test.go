package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATA_SOURCE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, filepath.Join(".", "data", "all_df.csv"), cfg.DataPath)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "port: 9000\ndata_source: sqlite\ndatabase_path: /tmp/rentals.db\ncaption_author: Someone\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, SourceSQLite, cfg.DataSource)
	assert.Equal(t, "/tmp/rentals.db", cfg.DatabasePath)
	assert.Equal(t, "Someone", cfg.CaptionAuthor)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AdminToken)

	t.Setenv("ADMIN_TOKEN", "s3cret")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.AdminToken)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATA_SOURCE", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingYAML(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("BIKEDASH_TEST_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("BIKEDASH_TEST_INT", 7))

	t.Setenv("BIKEDASH_TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("BIKEDASH_TEST_INT", 7))
}
