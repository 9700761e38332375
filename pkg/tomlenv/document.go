package tomlenv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

// Format 配置文档的语法。
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath 根据扩展名选择语法：.json 为 JSON，.yaml/.yml 为 YAML，其余为 TOML。
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ParseFormat 解析格式名称。
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTOML, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

// ParseDocument 按 format 解析配置文档，顶层必须是表。
//
// source 仅用于错误信息。YAML 与 JSON 的整数统一转换为 int64，与 TOML 保持一致。
func ParseDocument(source string, content []byte, format Format) (map[string]any, error) {
	switch format {
	case FormatJSON:
		return parseJSON(source, content)
	case FormatYAML:
		return parseYAML(source, content)
	default:
		return parseTOML(source, content)
	}
}

func parseTOML(source string, content []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		parseErr := &ParseError{Path: source, Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			parseErr.Line, parseErr.Column = decodeErr.Position()
		}

		return nil, parseErr
	}
	if doc == nil {
		doc = map[string]any{}
	}

	return doc, nil
}

func parseYAML(source string, content []byte) (map[string]any, error) {
	var raw any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}

	return rootTable(source, normalize(raw))
}

func parseJSON(source string, content []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}

		return nil, &ParseError{Path: source, Err: err}
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected content after top-level value")
		}

		return nil, &ParseError{Path: source, Err: err}
	}

	return rootTable(source, normalize(raw))
}

func rootTable(source string, value any) (map[string]any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	table, ok := value.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: source, Err: fmt.Errorf("config root must be a table, got %s", describe(value))}
	}

	return table, nil
}

// normalize 将 YAML/JSON 解码结果转换为与 TOML 相同的结构。
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			out[key] = normalize(v)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			out[fmt.Sprintf("%v", key)] = normalize(v)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalize(v)
		}

		return out
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i
		}
		if f, err := typed.Float64(); err == nil {
			return f
		}

		return typed.String()
	case int:
		return int64(typed)
	case int32:
		return int64(typed)
	case uint64:
		if typed > math.MaxInt64 {
			return float64(typed)
		}

		return int64(typed)
	case float32:
		return float64(typed)
	default:
		return value
	}
}

// Encode 将 v 按 format 写入 w。TOML 要求 v 为表或结构体。
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case FormatYAML:
		encoder := yamlv3.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}

		return encoder.Close()
	default:
		return toml.NewEncoder(w).SetIndentTables(true).Encode(v)
	}
}
