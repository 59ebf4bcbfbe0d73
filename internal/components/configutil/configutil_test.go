package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Timeout  int    `json:"timeout_seconds"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](path)
	require.True(t, errors.Is(err, os.ErrNotExist))

	writeFile(t, path, `{
		// comments and trailing commas are fine
		base_url: "https://evision.example",
		username: "student",
		timeout_seconds: 10,
	}`)
	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:  "https://evision.example",
		Username: "student",
		Timeout:  10,
	}, cfg)

	writeFile(t, filepath.Join(dir, "config.local.json5"), `{password: "hunter2", timeout_seconds: 20}`)
	cfg, err = ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:  "https://evision.example",
		Username: "student",
		Password: "hunter2",
		Timeout:  20,
	}, cfg)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{username: "local"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Username)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	writeFile(t, path, `{username: `)

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(root, "recursive_test.json5"), `{username: "found"}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(wd)

	cfg, err := ReadRecursively[testConfig]("recursive_test.json5")
	require.NoError(t, err)
	require.Equal(t, "found", cfg.Username)

	_, err = ReadRecursively[testConfig]("does_not_exist_anywhere.json5")
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOverride(t *testing.T) {
	cfg := testConfig{BaseUrl: "a", Username: "b"}
	err := Override(&cfg, testConfig{Username: "c", Timeout: 5})
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "a", Username: "c", Timeout: 5}, cfg)
}
