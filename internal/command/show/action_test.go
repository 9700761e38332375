package show

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, argv ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := &cli.Command{
		Name:      "tomlenv",
		Writer:    &buf,
		ErrWriter: io.Discard,
		Commands:  []*cli.Command{newCommand()},
	}
	err := root.Run(context.Background(), append([]string{"tomlenv", "show"}, argv...))

	return buf.String(), err
}

func writeConfig(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"file\"\n\n[server]\nport = 80\n"), 0o600))

	return dir, path
}

func TestShow_TOML(t *testing.T) {
	dir, path := writeConfig(t)
	t.Setenv("SHOWTEST_CONFIG", "debug = true")
	t.Setenv("SHOWTEST__SERVER__HOST", "example.com")

	out, err := run(t,
		"--dotenv", filepath.Join(dir, "missing.env.toml"),
		"--variable", "SHOWTEST_CONFIG",
		"--auto", "--prefix", "SHOWTEST",
		"--config", path,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "# sources (lowest precedence first):\n"+
		"#   environment variables SHOWTEST_CONFIG\n"+
		"#   environment variables SHOWTEST__SERVER__HOST\n"+
		"#   config file \""+path+"\"\n")
	assert.Contains(t, out, "debug = true")
	assert.Contains(t, out, "name = 'file'")
	assert.Contains(t, out, "port = 80")
	assert.Contains(t, out, "host = 'example.com'")
}

func TestShow_JSON(t *testing.T) {
	dir, path := writeConfig(t)

	out, err := run(t,
		"--dotenv", filepath.Join(dir, "missing.env.toml"),
		"--variable", "SHOWTEST_UNSET",
		"--config", path,
		"--format", "json",
	)
	require.NoError(t, err)
	assert.NotContains(t, out, "#")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"name": "file", "server": map[string]any{"port": float64(80)}}, got)
}

func TestShow_YAML(t *testing.T) {
	dir, path := writeConfig(t)

	out, err := run(t,
		"--dotenv", filepath.Join(dir, "missing.env.toml"),
		"--variable", "SHOWTEST_UNSET",
		"--config", path,
		"-f", "yml",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "name: file\n")
	assert.Contains(t, out, "server:\n  port: 80\n")
}

func TestShow_NoConfiguration(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t,
		"--dotenv", filepath.Join(dir, "missing.env.toml"),
		"--variable", "SHOWTEST_UNSET",
	)
	require.NoError(t, err)
	assert.Equal(t, "# no configuration found\n", out)
}

func TestShow_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--variable", "SHOWTEST_UNSET", "--dotenv", filepath.Join(dir, "x"), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("name = \n"), 0o600))
	_, err = run(t, "--variable", "SHOWTEST_UNSET", "--dotenv", filepath.Join(dir, "x"), "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")
}
