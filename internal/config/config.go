// Package config 提供命令行工具自身的默认设置。
//
// 每项设置都可以通过 flag 或 TOMLENV_ 前缀的环境变量覆盖，
// 见 internal/command 中的 Flags。
package config

// Config 命令行工具设置。
type Config struct {
	Load   LoadConfig   `toml:"load"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// LoadConfig 对应 tomlenv.Args 的各项参数。
type LoadConfig struct {
	DotEnv   string `toml:"dotenv"`
	Variable string `toml:"variable"`
	Auto     bool   `toml:"auto"`
	Prefix   string `toml:"prefix"`
	Divider  string `toml:"divider"`
	Expand   bool   `toml:"expand"`
}

// OutputConfig 输出设置。
type OutputConfig struct {
	Format string `toml:"format"`
}

// LogConfig 诊断日志设置。
type LogConfig struct {
	Mode string `toml:"mode"`
}

// DefaultConfig 返回默认设置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Load: LoadConfig{
			DotEnv:   ".env.toml",
			Variable: "CONFIG",
			Divider:  "__",
		},
		Output: OutputConfig{
			Format: "toml",
		},
		Log: LogConfig{
			Mode: "none",
		},
	}
}
