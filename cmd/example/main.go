// Command example 演示在程序启动时使用 tomlenv 加载类型化配置。
//
// 在本目录下运行：
//
//	go run .
//	EXAMPLE__SERVER__PORT=9000 EXAMPLE__NAME=override go run .
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

// Config 示例程序的配置。
type Config struct {
	Name     string         `toml:"name"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Admins   []string       `toml:"admins"`
}

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Addr    string        `toml:"addr"`
	Port    int           `toml:"port"`
	Timeout time.Duration `toml:"timeout"`
}

// DatabaseConfig 数据库配置。
type DatabaseConfig struct {
	URL      string `toml:"url"`
	MaxConns int    `toml:"max_conns"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := tomlenv.Initialize[Config](tomlenv.Args{
		ConfigPath:         "config.toml",
		ConfigVariableName: "EXAMPLE_CONFIG",
		Logger:             tomlenv.Slog(logger),
		MapEnv: map[string]tomlenv.KeyPath{
			// 由 .env.toml 导出
			"DATABASE_URL": tomlenv.MustParseKeyPath("database.url"),
		},
		AutoMapEnv: &tomlenv.AutoMapEnvArgs{Prefix: "EXAMPLE"},
	})
	if err != nil {
		logger.Error("加载配置失败", "error", err)
		os.Exit(1)
	}
	if cfg == nil {
		logger.Error("没有找到任何配置")
		os.Exit(1)
	}

	logger.Info("Config loaded",
		"name", cfg.Name,
		"addr", cfg.Server.Addr,
		"port", cfg.Server.Port,
		"timeout", cfg.Server.Timeout,
		"database", cfg.Database.URL,
		"max_conns", cfg.Database.MaxConns,
		"admins", cfg.Admins,
	)
}
