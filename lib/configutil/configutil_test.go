package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Url        string `json:"url"`
	MaxResults int    `json:"max_results"`
	Headless   bool   `json:"headless"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightscout.json5")

	_, err := ReadConfig[testConfig](path)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = os.WriteFile(path, []byte(`{
		// comments are allowed
		url: "https://example.com/search",
		max_results: 10,
	}`), 0644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/search", cfg.Url)
	require.Equal(t, 10, cfg.MaxResults)

	err = os.WriteFile(filepath.Join(dir, "flightscout.local.json5"), []byte(`{max_results: 25, headless: true}`), 0644)
	require.NoError(t, err)

	cfg, err = ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/search", cfg.Url)
	require.Equal(t, 25, cfg.MaxResults)
	require.True(t, cfg.Headless)
}

func TestReadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{url: `), 0644))

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, "a/b/telemetry.local.json5", localName("a/b/telemetry.json5"))
	require.Equal(t, "config.local", localName("config"))
}
