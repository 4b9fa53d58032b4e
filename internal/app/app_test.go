package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, cfg Config) (string, error) {
	t.Helper()
	cfg.LogLevel = "error"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	a := NewApp(&out, validated)
	err = a.Run(context.Background(), validated)
	return out.String(), err
}

func TestRunWithDefaults(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, Config{
		Family:     "applications.hello",
		SearchPath: []string{t.TempDir()},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world!\n", out)
}

func TestRunWithDiscoveredFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "hello.pfg", `
; discovered by instance name
hello:
  who = night shift
  times = 2
`)

	// --- Act ---
	out, err := runApp(t, Config{
		Family:     "applications.hello",
		SearchPath: []string{dir},
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Hello night shift!\nHello night shift!\n", out)
}

func TestRunCommandLineOutranksFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "hello.pfg", "hello.times = 3\nhello.who = night shift\n")

	out, err := runApp(t, Config{
		Family:      "applications.hello",
		SearchPath:  []string{dir},
		Assignments: []string{"--times=1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello night shift!\n", out)
}

func TestRunExplicitConfigOutranksDiscovered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "hello.pfg", "hello.who = discovered\n")
	explicit := writeFile(t, dir, "site.yaml", "hello:\n  who: explicit\n")

	out, err := runApp(t, Config{
		Family:     "applications.hello",
		SearchPath: []string{dir},
		ConfigPath: explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello explicit!\n", out)
}

func TestRunGreeterSwapAcrossFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configs := map[string]string{
		"swap.pfg":  "hello:\n  greeter = greeters.shout\n",
		"swap.yaml": "hello:\n  greeter: greeters.shout\n",
		"swap.hcl":  "hello {\n  greeter = \"greeters.shout\"\n}\n",
	}

	for name, content := range configs {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, content)
			out, err := runApp(t, Config{
				Family:     "applications.hello",
				SearchPath: []string{t.TempDir()},
				ConfigPath: path,
			})
			require.NoError(t, err)
			assert.Equal(t, "HELLO WORLD!!!\n", out)
		})
	}
}

func TestRunReportsEveryConfigurationMistake(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "hello.pfg", `
hello:
  times = -1
  what even is this line
`)

	_, err := runApp(t, Config{
		Family:     "applications.hello",
		SearchPath: []string{dir},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "isPositive: received -1")
	assert.Contains(t, err.Error(), "malformed line")
}

func TestRunUnsupportedConfigFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "hello.toml", "")

	_, err := runApp(t, Config{
		Family:     "applications.hello",
		SearchPath: []string{t.TempDir()},
		ConfigPath: path,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported configuration format")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("family required", func(t *testing.T) {
		_, err := NewConfig(Config{})
		require.Error(t, err)
	})

	t.Run("instance derived from family", func(t *testing.T) {
		cfg, err := NewConfig(Config{Family: "applications/hello"})
		require.NoError(t, err)
		assert.Equal(t, "applications.hello", cfg.Family)
		assert.Equal(t, "hello", cfg.Instance)
		assert.Equal(t, []string{"."}, cfg.SearchPath)
	})

	t.Run("watch requires explicit config", func(t *testing.T) {
		_, err := NewConfig(Config{Family: "applications.hello", Watch: true})
		require.Error(t, err)
	})
}
