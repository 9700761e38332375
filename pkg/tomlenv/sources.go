package tomlenv

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/expand"
)

// layer 一个来源产出的配置及其出处。
type layer struct {
	tree   map[string]any
	source ConfigSource
}

// loader 按固定顺序读取各个来源。
type loader struct {
	args Args
	// validate 校验 dotenv 文件中的配置表，为 nil 时跳过。
	validate func(map[string]any) error
}

// readFile 读取文件，启用模板展开时先展开 ${VAR}。
func (l *loader) readFile(path string) ([]byte, error) {
	content, err := l.args.FS.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	if !l.args.ExpandTemplates {
		return content, nil
	}

	expanded, err := expand.New(l.args.Env.LookupEnv).Expand(string(content))
	if err != nil {
		return nil, fmt.Errorf("expand template in %s: %w", path, err)
	}

	return []byte(expanded), nil
}

// loadDotEnv 读取 .env.toml 格式文件：标量导出为环境变量，配置表作为本来源的值。
//
// 文件不存在或没有配置表时不产出配置，但标量仍会导出。
func (l *loader) loadDotEnv() (*layer, error) {
	path := l.args.DotEnvPath
	if !isFile(l.args.FS, path) {
		return nil, nil
	}

	content, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parseTOML(path, content)
	if err != nil {
		return nil, err
	}

	name := l.args.ConfigVariableName
	var config map[string]any
	exports := make(map[string]string, len(doc))
	for _, key := range sortedKeys(doc) {
		switch value := doc[key].(type) {
		case map[string]any:
			if key != name {
				return nil, &DotEnvEntryError{
					Key:  key,
					Path: path,
					Advice: fmt.Sprintf("only the [%s] table is allowed, move this table into it as [%s.%s]",
						name, name, key),
				}
			}
			config = value
		case []any:
			return nil, &DotEnvEntryError{
				Key:    key,
				Path:   path,
				Advice: fmt.Sprintf("arrays cannot be exported as environment variables, move this array into the [%s] table", name),
			}
		default:
			s, ok := FormatScalar(value)
			if !ok {
				return nil, &DotEnvEntryError{Key: key, Path: path, Advice: "unsupported value " + describe(value)}
			}
			exports[key] = s
		}
	}

	keys := sortedKeys(exports)
	for _, key := range keys {
		if err := l.args.Env.Setenv(key, exports[key]); err != nil {
			return nil, fmt.Errorf("set %s environment variable from %q: %w", key, path, err)
		}
	}
	if len(keys) > 0 && enabled(l.args.Logger) {
		l.args.Logger.Emit(fmt.Sprintf("Loaded environment variables from %q: %s", path, strings.Join(keys, ", ")))
	}

	if config == nil {
		return nil, nil
	}
	if l.validate != nil {
		if err := l.validate(config); err != nil {
			return nil, &DotEnvConfigError{Name: name, Path: path, Err: err}
		}
	}
	if enabled(l.args.Logger) {
		l.args.Logger.Emit(fmt.Sprintf("Loaded config from [%s] table in %q", name, path))
	}

	return &layer{tree: config, source: DotEnvSource(path)}, nil
}

// loadEnvFiles 读取普通 KEY=VALUE 格式的 .env 文件，已存在的变量不覆盖。
func (l *loader) loadEnvFiles() error {
	for _, path := range l.args.EnvFiles {
		if !isFile(l.args.FS, path) {
			continue
		}

		content, err := l.args.FS.ReadFile(path)
		if err != nil {
			return &FileReadError{Path: path, Err: err}
		}
		vars, err := godotenv.Unmarshal(string(content))
		if err != nil {
			return &ParseError{Path: path, Err: err}
		}

		var loaded []string
		for _, key := range sortedKeys(vars) {
			if _, ok := l.args.Env.LookupEnv(key); ok {
				continue
			}
			if err := l.args.Env.Setenv(key, vars[key]); err != nil {
				return fmt.Errorf("set %s environment variable from %q: %w", key, path, err)
			}
			loaded = append(loaded, key)
		}
		if len(loaded) > 0 && enabled(l.args.Logger) {
			l.args.Logger.Emit(fmt.Sprintf("Loaded environment variables from %q: %s", path, strings.Join(loaded, ", ")))
		}
	}

	return nil
}

// loadConfigVariable 读取配置变量：先按内联 TOML 解析，失败时按文件路径读取。
func (l *loader) loadConfigVariable() (*layer, error) {
	name := l.args.ConfigVariableName
	value, ok := l.args.Env.LookupEnv(name)
	if !ok {
		return nil, nil
	}
	if !utf8.ValidString(value) {
		return nil, &EnvReadError{Name: name, Err: ErrInvalidUnicode}
	}

	inline, inlineErr := parseTOML(name, []byte(value))
	if inlineErr == nil {
		if enabled(l.args.Logger) {
			l.args.Logger.Emit(fmt.Sprintf("Loaded config from %s environment variable", name))
		}

		return &layer{tree: inline, source: EnvironmentSource(name)}, nil
	}

	if !isFile(l.args.FS, value) {
		return nil, &ConfigVariableError{Name: name, Value: value, Err: inlineErr}
	}
	tree, err := l.loadDocument(value)
	if err != nil {
		return nil, err
	}
	if enabled(l.args.Logger) {
		l.args.Logger.Emit(fmt.Sprintf("Loaded config from file %q named by %s environment variable", value, name))
	}

	return &layer{tree: tree, source: FileSource(value)}, nil
}

// loadConfigFile 读取显式指定的配置文件，文件不存在时不产出配置。
func (l *loader) loadConfigFile() (*layer, error) {
	path := l.args.ConfigPath
	if path == "" || !isFile(l.args.FS, path) {
		return nil, nil
	}

	tree, err := l.loadDocument(path)
	if err != nil {
		return nil, err
	}
	if enabled(l.args.Logger) {
		l.args.Logger.Emit(fmt.Sprintf("Loaded config from file %q", path))
	}

	return &layer{tree: tree, source: FileSource(path)}, nil
}

// loadEnvironment 读取映射的环境变量。
func (l *loader) loadEnvironment() (*layer, error) {
	tree, source, ok, err := mapEnvironment(l.args)
	if err != nil || !ok {
		return nil, err
	}

	return &layer{tree: tree, source: source}, nil
}

func (l *loader) loadDocument(path string) (map[string]any, error) {
	content, err := l.readFile(path)
	if err != nil {
		return nil, err
	}

	return ParseDocument(path, content, FormatFromPath(path))
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// renderTOML 序列化 v 用于日志，失败时返回错误描述。
func renderTOML(v any) string {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<failed to serialize: %v>", err)
	}

	return strings.TrimRight(string(data), "\n")
}
