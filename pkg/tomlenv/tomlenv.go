package tomlenv

import (
	"fmt"
)

// Document 合并后的配置树及其出处。
type Document struct {
	Tree   map[string]any
	Source ConfigSource

	args Args
}

// Decode 将合并后的配置解码到 out（指针），使用加载时的 TagName 与 Strict 设置。
func (d *Document) Decode(out any) error {
	if err := decode(d.Tree, out, d.args); err != nil {
		return &DecodeError{Source: d.Source, Err: err}
	}

	return nil
}

// Lookup 按路径读取合并后的值。
func (d *Document) Lookup(path KeyPath) (any, bool) {
	return path.Resolve(d.Tree)
}

// LoadDocument 读取全部来源并合并，不做类型解码。
//
// 没有任何来源产出配置时返回 (nil, nil)。dotenv 文件中的配置表不做校验。
func LoadDocument(args Args) (*Document, error) {
	return load(args.withDefaults(), nil)
}

// Initialize 读取全部来源、按优先级合并并解码为 T。
//
// 执行顺序：
//  1. .env.toml 格式文件：标量导出为环境变量，[CONFIG] 表作为配置
//  2. EnvFiles 中的普通 .env 文件（不覆盖已有变量）
//  3. 配置变量（内联 TOML 或文件路径）
//  4. 环境变量映射
//  5. 显式配置文件
//
// 优先级 (从低到高)：dotenv 配置表 < 配置变量 < 环境变量映射 < 配置文件。
//
// 没有任何来源产出配置时返回 (nil, nil)。
func Initialize[T any](args Args) (*T, error) {
	args = args.withDefaults()
	validate := func(tree map[string]any) error {
		var probe T

		return decode(tree, &probe, args)
	}

	doc, err := load(args, validate)
	if err != nil || doc == nil {
		return nil, err
	}

	var cfg T
	if err := doc.Decode(&cfg); err != nil {
		return nil, err
	}
	if enabled(args.Logger) {
		args.Logger.Emit("Parsed configuration:\n" + renderTOML(cfg))
	}

	return &cfg, nil
}

// Load 是 [Initialize] 的选项版本。
//
// 与 Initialize 不同，没有任何来源时返回 T 的零值而不是 nil。
//
// 示例：
//
//	cfg, err := tomlenv.Load[Config](
//	    tomlenv.WithConfigPath("config.toml"),
//	    tomlenv.WithAutoMapEnv(tomlenv.DefaultAutoMapEnv()),
//	)
func Load[T any](opts ...Option) (*T, error) {
	args, err := BuildArgs(opts...)
	if err != nil {
		return nil, err
	}

	cfg, err := Initialize[T](args)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = new(T)
	}

	return cfg, nil
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
//
// 示例：
//
//	cfg := tomlenv.MustLoad[Config](
//	    tomlenv.WithAutoMapEnv(tomlenv.DefaultAutoMapEnv()),
//	)
func MustLoad[T any](opts ...Option) *T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("tomlenv: failed to load config: %v", err))
	}

	return cfg
}

// load 按顺序读取来源，再按优先级从低到高依次合并。
func load(args Args, validate func(map[string]any) error) (*Document, error) {
	l := &loader{args: args, validate: validate}

	dotenv, err := l.loadDotEnv()
	if err != nil {
		return nil, err
	}
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}
	variable, err := l.loadConfigVariable()
	if err != nil {
		return nil, err
	}
	environment, err := l.loadEnvironment()
	if err != nil {
		return nil, err
	}
	file, err := l.loadConfigFile()
	if err != nil {
		return nil, err
	}

	var merged *layer
	for _, next := range []*layer{dotenv, variable, environment, file} {
		if next == nil {
			continue
		}
		if merged == nil {
			merged = next

			continue
		}

		tree, err := Merge(merged.tree, next.tree)
		if err != nil {
			return nil, &MergeError{From: next.source, Into: merged.source, Err: err}
		}
		merged = &layer{
			tree:   tree.(map[string]any), //nolint:forcetypeassert // merging two tables yields a table
			source: MergedSource(next.source, merged.source),
		}
	}
	if merged == nil {
		if enabled(args.Logger) {
			args.Logger.Emit("No configuration found")
		}

		return nil, nil
	}

	return &Document{Tree: merged.tree, Source: merged.source, args: args}, nil
}
