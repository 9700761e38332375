package logsink_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/logsink"
	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

func TestZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := logsink.Zap(zap.New(core).Sugar())

	sink.Emit("Loaded config from file \"config.toml\"")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Loaded config from file \"config.toml\"", entries[0].Message)
	assert.Equal(t, "tomlenv", entries[0].ContextMap()["component"])
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	sink := logsink.Zerolog(zerolog.New(&buf))

	sink.Emit("No configuration found")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "tomlenv", entry["component"])
	assert.Equal(t, "No configuration found", entry["message"])
}

func TestZap_ReceivesLoaderOutput(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	env := tomlenv.MapEnv{"CONFIG": `name = "demo"`}

	type config struct {
		Name string `toml:"name"`
	}
	args := tomlenv.Args{
		DotEnvPath: "missing.env.toml",
		Env:        env,
		Logger:     logsink.Zap(zap.New(core).Sugar()),
	}
	cfg, err := tomlenv.Initialize[config](args)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "demo", cfg.Name)

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "Loaded config from CONFIG environment variable")
	assert.Contains(t, messages, "Parsed configuration:\nname = 'demo'")
}
