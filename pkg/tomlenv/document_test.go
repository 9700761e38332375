package tomlenv_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want tomlenv.Format
	}{
		{"config.toml", tomlenv.FormatTOML},
		{"config.JSON", tomlenv.FormatJSON},
		{"config.yaml", tomlenv.FormatYAML},
		{"config.yml", tomlenv.FormatYAML},
		{"config", tomlenv.FormatTOML},
		{".env.toml", tomlenv.FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, tomlenv.FormatFromPath(tt.path))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := tomlenv.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, tomlenv.FormatYAML, f)

	_, err = tomlenv.ParseFormat("ini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "ini"`)
}

func TestParseDocument(t *testing.T) {
	want := map[string]any{
		"name": "app",
		"port": int64(8080),
		"rate": 1.5,
		"server": map[string]any{
			"hosts": []any{"a", "b"},
		},
	}

	tests := []struct {
		name    string
		format  tomlenv.Format
		content string
	}{
		{
			name:   "toml",
			format: tomlenv.FormatTOML,
			content: `name = "app"
port = 8080
rate = 1.5

[server]
hosts = ["a", "b"]
`,
		},
		{
			name:   "yaml",
			format: tomlenv.FormatYAML,
			content: `name: app
port: 8080
rate: 1.5
server:
  hosts: [a, b]
`,
		},
		{
			name:    "json",
			format:  tomlenv.FormatJSON,
			content: `{"name": "app", "port": 8080, "rate": 1.5, "server": {"hosts": ["a", "b"]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tomlenv.ParseDocument("test", []byte(tt.content), tt.format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseDocument_Empty(t *testing.T) {
	for _, format := range []tomlenv.Format{tomlenv.FormatTOML, tomlenv.FormatYAML, tomlenv.FormatJSON} {
		got, err := tomlenv.ParseDocument("empty", nil, format)
		require.NoError(t, err, format)
		assert.Empty(t, got, format)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	t.Run("toml position", func(t *testing.T) {
		_, err := tomlenv.ParseDocument("bad.toml", []byte("a = 1\nb = = 2\n"), tomlenv.FormatTOML)
		var parseErr *tomlenv.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "bad.toml", parseErr.Path)
		assert.Equal(t, 2, parseErr.Line)
	})

	t.Run("root must be a table", func(t *testing.T) {
		_, err := tomlenv.ParseDocument("list.json", []byte(`[1, 2]`), tomlenv.FormatJSON)
		var parseErr *tomlenv.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, err.Error(), "config root must be a table")
	})

	t.Run("json trailing content", func(t *testing.T) {
		for _, content := range []string{`{"a":1} {"b":2}`, `{"a":1} garbage`, `{"a":1}}`} {
			got, err := tomlenv.ParseDocument("c.json", []byte(content), tomlenv.FormatJSON)
			var parseErr *tomlenv.ParseError
			require.ErrorAs(t, err, &parseErr, content)
			assert.Equal(t, "c.json", parseErr.Path)
			assert.Nil(t, got)
		}

		got, err := tomlenv.ParseDocument("c.json", []byte("{\"a\":1}\n\n"), tomlenv.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1)}, got)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := tomlenv.ParseDocument("bad.yaml", []byte("a: [1, 2"), tomlenv.FormatYAML)
		var parseErr *tomlenv.ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestEncode(t *testing.T) {
	tree := map[string]any{"server": map[string]any{"port": int64(80)}}

	var buf bytes.Buffer
	require.NoError(t, tomlenv.Encode(&buf, tree, tomlenv.FormatJSON))
	assert.JSONEq(t, `{"server": {"port": 80}}`, buf.String())

	buf.Reset()
	require.NoError(t, tomlenv.Encode(&buf, tree, tomlenv.FormatYAML))
	assert.YAMLEq(t, "server:\n  port: 80\n", buf.String())

	buf.Reset()
	require.NoError(t, tomlenv.Encode(&buf, tree, tomlenv.FormatTOML))
	back, err := tomlenv.ParseDocument("encoded", buf.Bytes(), tomlenv.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, tree, back)
}
