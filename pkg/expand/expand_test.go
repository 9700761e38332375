package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/expand"
)

func mapLookup(vars map[string]string) expand.LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]

		return v, ok
	}
}

func TestExpand_ShellParameterExpansion(t *testing.T) {
	e := expand.New(mapLookup(map[string]string{
		"SHELL_SET":   "set-value",
		"SHELL_EMPTY": "",
	}))

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  bool
		errMsg   string
	}{
		{name: "basic expansion", template: `prefix-${SHELL_SET}-suffix`, want: "prefix-set-value-suffix"},
		{name: "missing expands to empty", template: `x=${SHELL_MISSING}`, want: "x="},
		{name: "fallback with colon treats empty as unset", template: `${SHELL_EMPTY:-fallback}`, want: "fallback"},
		{name: "fallback without colon keeps empty", template: `x=${SHELL_EMPTY-fallback}`, want: "x="},
		{name: "fallback not used when set", template: `${SHELL_SET:-fallback}`, want: "set-value"},
		{name: "alternate with colon", template: `${SHELL_SET:+alt}`, want: "alt"},
		{name: "alternate with colon skips empty", template: `x=${SHELL_EMPTY:+alt}`, want: "x="},
		{name: "alternate without colon accepts empty", template: `${SHELL_EMPTY+alt}`, want: "alt"},
		{name: "nested fallback", template: `${SHELL_MISSING:-${SHELL_SET}}`, want: "set-value"},
		{name: "assignment visible later in same text", template: `${SHELL_NEW:=value}-${SHELL_NEW}`, want: "value-value"},
		{name: "literal dollar", template: `$$${SHELL_SET}`, want: "$set-value"},
		{name: "bare dollar kept", template: `cost $5 and $HOME`, want: "cost $5 and $HOME"},
		{name: "unterminated kept", template: `${SHELL_SET`, want: "${SHELL_SET"},
		{name: "unrecognized expression kept", template: `${1BAD}`, want: "${1BAD}"},
		{name: "required var triggers error", template: `${SHELL_MISSING:?missing}`, wantErr: true, errMsg: "missing"},
		{name: "required empty with colon fails", template: `${SHELL_EMPTY:?}`, wantErr: true, errMsg: "parameter null or not set"},
		{name: "required empty without colon passes", template: `x=${SHELL_EMPTY?}`, want: "x="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Expand(tt.template)
			if tt.wantErr {
				require.ErrorIs(t, err, expand.ErrRequired)
				assert.Contains(t, err.Error(), tt.errMsg)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_AssignmentDoesNotLeak(t *testing.T) {
	vars := map[string]string{}
	e := expand.New(mapLookup(vars))

	got, err := e.Expand(`${MODEL:=small}`)
	require.NoError(t, err)
	assert.Equal(t, "small", got)
	assert.Empty(t, vars)

	got, err = e.Expand(`x=${MODEL}`)
	require.NoError(t, err)
	assert.Equal(t, "x=", got)
}

func TestEnv_TOMLConfig(t *testing.T) {
	t.Setenv("API_KEY", "sk-test-123")
	t.Setenv("MODEL", "gpt-4")

	tomlConfig := "name = \"${AGENT_NAME:-test-agent}\"\nmodel = \"${MODEL:-gpt-3.5-turbo}\"\napi_key = \"${API_KEY}\"\n"

	expanded, err := expand.Env(tomlConfig)
	require.NoError(t, err)
	assert.Equal(t, "name = \"test-agent\"\nmodel = \"gpt-4\"\napi_key = \"sk-test-123\"\n", expanded)
}
