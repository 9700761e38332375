// Package command 提供 show 与 get 子命令共用的 flags 与配置加载逻辑。
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/config"
	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/logsink"
	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// EnvPrefix 每个 flag 都可以通过该前缀的环境变量设置。
const EnvPrefix = "TOMLENV_"

func envVars(name string) cli.ValueSourceChain {
	return cli.EnvVars(EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_")))
}

// Flags 返回加载配置所需的 flags，每次调用返回新的实例。
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dotenv",
			Value:   Defaults.Load.DotEnv,
			Usage:   ".env.toml 格式文件路径",
			Sources: envVars("dotenv"),
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径（最高优先级）",
			Sources: envVars("config"),
		},
		&cli.StringFlag{
			Name:    "variable",
			Value:   Defaults.Load.Variable,
			Usage:   "配置变量名，同时也是 dotenv 文件中配置表的名称",
			Sources: envVars("variable"),
		},
		&cli.StringSliceFlag{
			Name:    "map",
			Aliases: []string{"m"},
			Usage:   "环境变量映射 NAME=key.path，可重复",
			Sources: envVars("map"),
		},
		&cli.BoolFlag{
			Name:    "auto",
			Value:   Defaults.Load.Auto,
			Usage:   "启用环境变量自动发现",
			Sources: envVars("auto"),
		},
		&cli.StringFlag{
			Name:    "prefix",
			Value:   Defaults.Load.Prefix,
			Usage:   "自动发现的变量名前缀，默认与配置变量同名",
			Sources: envVars("prefix"),
		},
		&cli.StringFlag{
			Name:    "divider",
			Value:   Defaults.Load.Divider,
			Usage:   "变量名中的层级分隔符",
			Sources: envVars("divider"),
		},
		&cli.StringSliceFlag{
			Name:    "env-file",
			Usage:   "普通 KEY=VALUE 格式的 .env 文件，不覆盖已有变量，可重复",
			Sources: envVars("env-file"),
		},
		&cli.BoolFlag{
			Name:    "expand",
			Value:   Defaults.Load.Expand,
			Usage:   "展开配置文件中的 ${VAR}",
			Sources: envVars("expand"),
		},
		&cli.StringFlag{
			Name:    "log",
			Value:   Defaults.Log.Mode,
			Usage:   "诊断输出: none, stdout, slog, zap, zerolog",
			Sources: envVars("log"),
		},
	}
}

// FormatFlag 返回输出格式 flag。
func FormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   Defaults.Output.Format,
		Usage:   "输出格式: toml, json, yaml",
		Sources: envVars("format"),
	}
}

// ArgsFromCommand 将 flags 转换为 tomlenv.Args。
//
// 返回的 cleanup 用于刷新日志缓冲，调用方应在结束时执行。
func ArgsFromCommand(cmd *cli.Command) (tomlenv.Args, func(), error) {
	args := tomlenv.Args{
		DotEnvPath:         cmd.String("dotenv"),
		ConfigPath:         cmd.String("config"),
		ConfigVariableName: cmd.String("variable"),
		EnvFiles:           cmd.StringSlice("env-file"),
		ExpandTemplates:    cmd.Bool("expand"),
	}

	for _, raw := range cmd.StringSlice("map") {
		name, path, err := ParseMapping(raw)
		if err != nil {
			return tomlenv.Args{}, func() {}, err
		}
		if args.MapEnv == nil {
			args.MapEnv = make(map[string]tomlenv.KeyPath)
		}
		args.MapEnv[name] = path
	}

	if cmd.Bool("auto") {
		auto := tomlenv.DefaultAutoMapEnv()
		auto.Prefix = cmd.String("prefix")
		if divider := cmd.String("divider"); divider != "" {
			auto.Divider = divider
		}
		args.AutoMapEnv = &auto
	}

	logger, cleanup, err := NewLogger(cmd.String("log"), ErrWriter(cmd))
	if err != nil {
		return tomlenv.Args{}, func() {}, err
	}
	args.Logger = logger

	return args, cleanup, nil
}

// ParseMapping 解析 "NAME=key.path" 形式的映射。
func ParseMapping(raw string) (string, tomlenv.KeyPath, error) {
	name, rawPath, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid mapping %q: expected NAME=key.path", raw)
	}
	path, err := tomlenv.ParseKeyPath(rawPath)
	if err != nil {
		return "", nil, fmt.Errorf("invalid mapping %q: %w", raw, err)
	}

	return name, path, nil
}

// NewLogger 按 mode 创建诊断输出，stdout 以外的模式写入 w。
func NewLogger(mode string, w io.Writer) (tomlenv.Logger, func(), error) {
	noop := func() {}

	switch strings.ToLower(mode) {
	case "", "none":
		return tomlenv.Discard, noop, nil
	case "stdout":
		return tomlenv.Stdout(), noop, nil
	case "slog":
		return tomlenv.Slog(slog.New(slog.NewTextHandler(w, nil))), noop, nil
	case "zap":
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(w),
			zapcore.InfoLevel,
		)
		logger := zap.New(core)

		return logsink.Zap(logger.Sugar()), func() { _ = logger.Sync() }, nil
	case "zerolog":
		logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()

		return logsink.Zerolog(logger), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown log mode %q: expected none, stdout, slog, zap or zerolog", mode)
	}
}

// Writer 返回根命令的输出，未设置时为标准输出。
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

// ErrWriter 返回根命令的错误输出，未设置时为标准错误。
func ErrWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}

	return os.Stderr
}
