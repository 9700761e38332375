package tomlenv

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultDotEnvPath 默认的 dotenv 文件路径。
	DefaultDotEnvPath = ".env.toml"
	// DefaultConfigVariableName 默认的配置变量名，同时也是 dotenv 文件中配置表的名称。
	DefaultConfigVariableName = "CONFIG"
	// DefaultMapEnvDivider 环境变量名中表示层级的分隔符，映射时替换为 "."。
	DefaultMapEnvDivider = "__"
	// DefaultTagName 解码时使用的结构体标签。
	DefaultTagName = "toml"
)

// AutoMapEnvArgs 控制环境变量的自动发现。
type AutoMapEnvArgs struct {
	// Divider 层级分隔符，默认 [DefaultMapEnvDivider]。
	Divider string
	// Prefix 变量名前缀（不含分隔符），默认与配置变量同名。
	Prefix string
	// Transform 在解析路径前转换去掉前缀后的变量名，默认转小写。
	// 必须是纯函数，每个候选变量调用一次。
	Transform func(name string) string
}

// DefaultAutoMapEnv 返回默认的自动发现参数。
func DefaultAutoMapEnv() AutoMapEnvArgs {
	return AutoMapEnvArgs{
		Divider:   DefaultMapEnvDivider,
		Transform: strings.ToLower,
	}
}

// Args 是一次配置加载的全部输入，零值字段使用默认值。
type Args struct {
	// DotEnvPath .env.toml 格式文件路径，默认 [DefaultDotEnvPath]。
	DotEnvPath string
	// ConfigPath 配置文件路径，为空表示不加载。
	ConfigPath string
	// ConfigVariableName 配置变量名，默认 [DefaultConfigVariableName]。
	ConfigVariableName string
	// Logger 诊断输出，默认 [Discard]。
	Logger Logger
	// MapEnv 显式映射：环境变量名 → 配置路径。优先于自动发现。
	MapEnv map[string]KeyPath
	// AutoMapEnv 非 nil 时启用自动发现。
	AutoMapEnv *AutoMapEnvArgs
	// EnvFiles 普通 KEY=VALUE 格式的 .env 文件，在环境变量映射前加载，不覆盖已有变量。
	EnvFiles []string
	// ExpandTemplates 解析前对文件内容执行 ${VAR} 展开。
	ExpandTemplates bool
	// Strict 解码时拒绝目标类型未声明的 key。
	Strict bool
	// TagName 解码使用的结构体标签，默认 [DefaultTagName]。
	TagName string
	// Env 环境变量读写能力，默认 [OSEnv]。
	Env Environment
	// FS 文件读取能力，默认 [OSFS]。
	FS FileSystem
}

// DefaultArgs 返回全部字段为默认值的 Args。
func DefaultArgs() Args {
	return Args{}.withDefaults()
}

func (a Args) withDefaults() Args {
	if a.DotEnvPath == "" {
		a.DotEnvPath = DefaultDotEnvPath
	}
	if a.ConfigVariableName == "" {
		a.ConfigVariableName = DefaultConfigVariableName
	}
	if a.Logger == nil {
		a.Logger = Discard
	}
	if a.TagName == "" {
		a.TagName = DefaultTagName
	}
	if a.Env == nil {
		a.Env = OSEnv{}
	}
	if a.FS == nil {
		a.FS = OSFS{}
	}
	if a.AutoMapEnv != nil {
		auto := *a.AutoMapEnv
		if auto.Divider == "" {
			auto.Divider = DefaultMapEnvDivider
		}
		if auto.Prefix == "" {
			auto.Prefix = a.ConfigVariableName
		}
		if auto.Transform == nil {
			auto.Transform = strings.ToLower
		}
		a.AutoMapEnv = &auto
	}

	return a
}

// options 由 Option 累积，最终转换为 Args。
type options struct {
	args Args
	err  error
}

// Option 配置加载选项函数。
type Option func(*options)

// WithDotEnvPath 设置 .env.toml 格式文件路径。
func WithDotEnvPath(path string) Option {
	return func(o *options) {
		o.args.DotEnvPath = path
	}
}

// WithConfigPath 设置配置文件路径（最高优先级）。
//
// 按扩展名选择语法：.yaml/.yml、.json，其余按 TOML 解析。
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.args.ConfigPath = path
	}
}

// WithConfigVariableName 设置配置变量名，同时决定 dotenv 文件中配置表的名称。
func WithConfigVariableName(name string) Option {
	return func(o *options) {
		o.args.ConfigVariableName = name
	}
}

// WithLogger 设置诊断输出，见 [Stdout]、[Slog]。
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.args.Logger = l
	}
}

// WithEnvMapping 将环境变量 name 映射到配置路径 path。
//
// 示例：
//
//	tomlenv.Load[Config](
//	    tomlenv.WithEnvMapping("DATABASE_URL", "database.url"),
//	    tomlenv.WithEnvMapping("REPLICA_URL", "database.replicas.0"),
//	)
//
// path 无法解析时，错误由 [Load] 返回。
func WithEnvMapping(name, path string) Option {
	return func(o *options) {
		keyPath, err := ParseKeyPath(path)
		if err != nil {
			o.err = errors.Join(o.err, fmt.Errorf("env mapping %s: %w", name, err))

			return
		}
		if o.args.MapEnv == nil {
			o.args.MapEnv = make(map[string]KeyPath)
		}
		o.args.MapEnv[name] = keyPath
	}
}

// WithAutoMapEnv 启用环境变量自动发现。
//
// 示例 (Prefix 为 "MYAPP"，Divider 为 "__")：
//   - MYAPP__DEBUG → debug
//   - MYAPP__SERVER__URL → server.url
//   - MYAPP__HOSTS__0 → hosts.0
func WithAutoMapEnv(auto AutoMapEnvArgs) Option {
	return func(o *options) {
		o.args.AutoMapEnv = &auto
	}
}

// WithEnvFiles 在环境变量映射前加载普通 .env 文件，已存在的变量不会被覆盖。
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.args.EnvFiles = append(o.args.EnvFiles, paths...)
	}
}

// WithTemplateExpansion 启用文件内容的 ${VAR} 展开（默认关闭）。
func WithTemplateExpansion() Option {
	return func(o *options) {
		o.args.ExpandTemplates = true
	}
}

// WithStrict 解码时拒绝目标类型未声明的 key。
func WithStrict() Option {
	return func(o *options) {
		o.args.Strict = true
	}
}

// WithTagName 设置解码使用的结构体标签，默认 "toml"。
func WithTagName(name string) Option {
	return func(o *options) {
		o.args.TagName = name
	}
}

// WithEnvironment 替换环境变量读写能力，见 [MapEnv]。
func WithEnvironment(env Environment) Option {
	return func(o *options) {
		o.args.Env = env
	}
}

// WithFileSystem 替换文件读取能力。
func WithFileSystem(fsys FileSystem) Option {
	return func(o *options) {
		o.args.FS = fsys
	}
}

// BuildArgs 应用 opts 并返回 Args；WithEnvMapping 的路径错误会在这里汇总返回。
func BuildArgs(opts ...Option) (Args, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return o.args, o.err
}
