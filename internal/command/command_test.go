package command_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command"
	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

func runFlags(t *testing.T, argv ...string) (tomlenv.Args, error) {
	t.Helper()

	var got tomlenv.Args
	cmd := &cli.Command{
		Name:  "test",
		Flags: command.Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, cleanup, err := command.ArgsFromCommand(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			got = args

			return nil
		},
	}
	err := cmd.Run(context.Background(), append([]string{"test"}, argv...))

	return got, err
}

func TestArgsFromCommand_Defaults(t *testing.T) {
	args, err := runFlags(t)
	require.NoError(t, err)

	assert.Equal(t, ".env.toml", args.DotEnvPath)
	assert.Equal(t, "CONFIG", args.ConfigVariableName)
	assert.Empty(t, args.ConfigPath)
	assert.Nil(t, args.MapEnv)
	assert.Nil(t, args.AutoMapEnv)
	assert.False(t, args.ExpandTemplates)
	assert.Equal(t, tomlenv.Discard, args.Logger)
}

func TestArgsFromCommand_Flags(t *testing.T) {
	args, err := runFlags(t,
		"--dotenv", "deploy/.env.toml",
		"-c", "config.yaml",
		"--variable", "APP_CONFIG",
		"--map", "DATABASE_URL=database.url",
		"-m", "REPLICA=database.replicas.0",
		"--auto",
		"--prefix", "APP",
		"--divider", "_",
		"--env-file", ".env",
		"--expand",
	)
	require.NoError(t, err)

	assert.Equal(t, "deploy/.env.toml", args.DotEnvPath)
	assert.Equal(t, "config.yaml", args.ConfigPath)
	assert.Equal(t, "APP_CONFIG", args.ConfigVariableName)
	assert.Equal(t, map[string]tomlenv.KeyPath{
		"DATABASE_URL": tomlenv.MustParseKeyPath("database.url"),
		"REPLICA":      tomlenv.MustParseKeyPath("database.replicas.0"),
	}, args.MapEnv)
	require.NotNil(t, args.AutoMapEnv)
	assert.Equal(t, "APP", args.AutoMapEnv.Prefix)
	assert.Equal(t, "_", args.AutoMapEnv.Divider)
	assert.Equal(t, "server", args.AutoMapEnv.Transform("SERVER"))
	assert.Equal(t, []string{".env"}, args.EnvFiles)
	assert.True(t, args.ExpandTemplates)
}

func TestArgsFromCommand_EnvSources(t *testing.T) {
	t.Setenv("TOMLENV_VARIABLE", "FROM_ENV")
	t.Setenv("TOMLENV_AUTO", "true")

	args, err := runFlags(t)
	require.NoError(t, err)
	assert.Equal(t, "FROM_ENV", args.ConfigVariableName)
	require.NotNil(t, args.AutoMapEnv)
	assert.Equal(t, "__", args.AutoMapEnv.Divider)
}

func TestArgsFromCommand_Errors(t *testing.T) {
	_, err := runFlags(t, "--map", "NO_PATH")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected NAME=key.path")

	_, err = runFlags(t, "--map", "NAME=a..b")
	require.ErrorIs(t, err, tomlenv.ErrInvalidKeyPath)

	_, err = runFlags(t, "--log", "syslog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log mode")
}

func TestParseMapping(t *testing.T) {
	tests := []struct {
		raw     string
		name    string
		path    string
		wantErr bool
	}{
		{raw: "DB=database.url", name: "DB", path: "database.url"},
		{raw: "HOST=hosts.0", name: "HOST", path: "hosts.0"},
		{raw: "X=a=b", name: "X", path: "a=b"},
		{raw: "=a", wantErr: true},
		{raw: "DB=", wantErr: true},
		{raw: "DB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, path, err := command.ParseMapping(tt.raw)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.path, path.String())
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, mode := range []string{"slog", "zap", "zerolog"} {
		t.Run(mode, func(t *testing.T) {
			var buf bytes.Buffer
			logger, cleanup, err := command.NewLogger(mode, &buf)
			require.NoError(t, err)

			logger.Emit("Loaded config from file")
			cleanup()

			assert.Contains(t, buf.String(), "Loaded config from file")
		})
	}

	for _, mode := range []string{"", "none", "NONE"} {
		logger, _, err := command.NewLogger(mode, nil)
		require.NoError(t, err)
		assert.Equal(t, tomlenv.Discard, logger)
	}

	logger, _, err := command.NewLogger("stdout", nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
