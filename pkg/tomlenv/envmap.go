package tomlenv

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// EnvMapping 一条生效的映射：环境变量 Name 写入配置路径 Path。
type EnvMapping struct {
	Name string
	Path KeyPath
}

// EnvMappings 返回生效的映射：显式映射加上自动发现的结果，显式映射优先。
//
// 结果按路径排序（数组下标按数值比较），路径相同再按变量名排序，
// 因此写入同一数组时下标总是递增的。
func EnvMappings(args Args) []EnvMapping {
	args = args.withDefaults()
	effective := make(map[string]KeyPath, len(args.MapEnv))
	maps.Copy(effective, args.MapEnv)

	if auto := args.AutoMapEnv; auto != nil {
		prefix := auto.Prefix + auto.Divider
		for _, name := range environNames(args.Env) {
			if !utf8.ValidString(name) || !strings.HasPrefix(name, prefix) {
				continue
			}
			if _, ok := effective[name]; ok {
				continue
			}
			key := auto.Transform(strings.TrimPrefix(name, prefix))
			path, err := ParseKeyPath(strings.ReplaceAll(key, auto.Divider, "."))
			if err != nil {
				continue
			}
			effective[name] = path
		}
	}

	mappings := make([]EnvMapping, 0, len(effective))
	for name, path := range effective {
		mappings = append(mappings, EnvMapping{Name: name, Path: path})
	}
	slices.SortFunc(mappings, func(a, b EnvMapping) int {
		if c := a.Path.Compare(b.Path); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return mappings
}

// mapEnvironment 读取映射的环境变量并写入一棵新的配置树。
//
// 没有任何映射变量存在时返回 false。
func mapEnvironment(args Args) (map[string]any, ConfigSource, bool, error) {
	mappings := EnvMappings(args)
	if len(mappings) == 0 {
		return nil, ConfigSource{}, false, nil
	}

	if enabled(args.Logger) {
		var buf strings.Builder
		for _, m := range mappings {
			if _, ok := args.Env.LookupEnv(m.Name); ok {
				fmt.Fprintf(&buf, "\n%s => %s", m.Name, m.Path)
			}
		}
		args.Logger.Emit("Loading config from current environment variables:" + buf.String())
	}

	var tree any = map[string]any{}
	var names []string
	for _, m := range mappings {
		raw, ok := args.Env.LookupEnv(m.Name)
		if !ok {
			continue
		}
		if !utf8.ValidString(raw) {
			return nil, ConfigSource{}, false, &EnvReadError{Name: m.Name, Err: ErrInvalidUnicode}
		}
		if len(m.Path) == 0 {
			return nil, ConfigSource{}, false, &EnvMappingError{Name: m.Name, Path: m.Path, Err: ErrInvalidKeyPath}
		}
		if err := Insert(&tree, m.Path, ParseScalar(raw)); err != nil {
			return nil, ConfigSource{}, false, &EnvMappingError{Name: m.Name, Path: m.Path, Err: err}
		}
		names = append(names, m.Name)
	}
	if len(names) == 0 {
		return nil, ConfigSource{}, false, nil
	}
	sort.Strings(names)

	return tree.(map[string]any), EnvironmentSource(names...), true, nil //nolint:forcetypeassert // paths are non-empty
}

// ParseScalar 将环境变量的字符串值转换为配置标量。
//
// 依次尝试 bool（仅 "true"/"false"）、float、int、datetime，全部失败时保留字符串。
// 该顺序对外可见：由于 float 先于 int，"1" 得到 float64(1)。
func ParseScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil || (errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)) {
		return f
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if dt, ok := parseDatetime(s); ok {
		return dt
	}

	return s
}

// parseDatetime 解析 TOML 的四种日期时间形式。
func parseDatetime(s string) (any, bool) {
	if t, err := time.Parse(time.RFC3339Nano, rfc3339(s)); err == nil {
		return t, true
	}

	var ldt toml.LocalDateTime
	if err := ldt.UnmarshalText([]byte(s)); err == nil {
		return ldt, true
	}
	var ld toml.LocalDate
	if err := ld.UnmarshalText([]byte(s)); err == nil {
		return ld, true
	}
	var lt toml.LocalTime
	if err := lt.UnmarshalText([]byte(s)); err == nil {
		return lt, true
	}

	return nil, false
}

// rfc3339 将 TOML 允许的空格、小写 t/z 写法改为 RFC 3339 形式。
func rfc3339(s string) string {
	if len(s) > 10 && s[4] == '-' && (s[10] == ' ' || s[10] == 't') {
		s = s[:10] + "T" + s[11:]
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}

	return s
}

// FormatScalar 将标量转换为字符串，与 dotenv 文件导出环境变量时的格式一致。
//
// 浮点数使用最短表示（inf、-inf、NaN 特殊处理），日期时间使用 TOML 形式。
// 表与数组返回 false。
func FormatScalar(v any) (string, bool) {
	switch typed := v.(type) {
	case string:
		return typed, true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		switch {
		case math.IsInf(typed, 1):
			return "inf", true
		case math.IsInf(typed, -1):
			return "-inf", true
		case math.IsNaN(typed):
			return "NaN", true
		}

		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	case time.Time:
		return typed.Format(time.RFC3339Nano), true
	case toml.LocalDateTime:
		return typed.String(), true
	case toml.LocalDate:
		return typed.String(), true
	case toml.LocalTime:
		return typed.String(), true
	default:
		return "", false
	}
}
