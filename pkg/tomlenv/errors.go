package tomlenv

import (
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// 哨兵错误，配合 errors.Is 使用。
var (
	// ErrInvalidKeyPath 路径为空或含有空片段。
	ErrInvalidKeyPath = errors.New("invalid key path")

	// ErrTypeMismatch 路径片段与节点类型不符（属性访问数组、下标访问表等）。
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfBounds 数组下标大于数组长度。
	ErrOutOfBounds = errors.New("array index out of bounds")

	// ErrMergeConflict 合并时同一 key 上的形状不兼容。
	ErrMergeConflict = errors.New("merge conflict")

	// ErrDotEnvFormat dotenv 文件结构不符合要求。
	ErrDotEnvFormat = errors.New("invalid dotenv file format")

	// ErrInvalidUnicode 环境变量的值不是合法的 UTF-8。
	ErrInvalidUnicode = errors.New("value is not valid unicode")
)

// KeyPathError 无法解析的路径。
type KeyPathError struct {
	Path string
}

func (e *KeyPathError) Error() string {
	return fmt.Sprintf("unable to parse path %q into key path", e.Path)
}

func (e *KeyPathError) Is(target error) bool { return target == ErrInvalidKeyPath }

// TablePropertyCannotIndexError 用表属性访问了非表节点。
type TablePropertyCannotIndexError struct {
	Property string
	Value    any
}

func (e *TablePropertyCannotIndexError) Error() string {
	return fmt.Sprintf("table property %q cannot index %s", e.Property, describe(e.Value))
}

func (e *TablePropertyCannotIndexError) Is(target error) bool { return target == ErrTypeMismatch }

// ArrayIndexCannotIndexError 用数组下标访问了非数组节点。
type ArrayIndexCannotIndexError struct {
	Index int
	Value any
}

func (e *ArrayIndexCannotIndexError) Error() string {
	return fmt.Sprintf("array index %d cannot index %s", e.Index, describe(e.Value))
}

func (e *ArrayIndexCannotIndexError) Is(target error) bool { return target == ErrTypeMismatch }

// ArrayOutOfBoundsError 数组下标大于数组长度（等于长度表示追加）。
type ArrayOutOfBoundsError struct {
	Index int
	Array []any
}

func (e *ArrayOutOfBoundsError) Error() string {
	return fmt.Sprintf("array index %d out of bounds for array of length %d", e.Index, len(e.Array))
}

func (e *ArrayOutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// MergeConflictError 合并时同一路径上出现不兼容的形状。
type MergeConflictError struct {
	Path   KeyPath
	Lower  any
	Higher any
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("incompatible types at %q: cannot merge %s over %s",
		e.Path.String(), describe(e.Higher), describe(e.Lower))
}

func (e *MergeConflictError) Is(target error) bool { return target == ErrMergeConflict }

// EnvReadError 环境变量存在但无法读取。
type EnvReadError struct {
	Name string
	Err  error
}

func (e *EnvReadError) Error() string {
	return fmt.Sprintf("error reading %s environment variable: %v", e.Name, e.Err)
}

func (e *EnvReadError) Unwrap() error { return e.Err }

// FileReadError 文件存在但读取失败。
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("error reading file %q: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ParseError 配置文档语法错误。
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("error parsing %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}

	return fmt.Sprintf("error parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DotEnvEntryError dotenv 文件中出现数组或不允许的表。
type DotEnvEntryError struct {
	Key    string
	Path   string
	Advice string
}

func (e *DotEnvEntryError) Error() string {
	return fmt.Sprintf("cannot parse %s as environment variable in %q: %s", e.Key, e.Path, e.Advice)
}

func (e *DotEnvEntryError) Is(target error) bool { return target == ErrDotEnvFormat }

// DotEnvConfigError dotenv 文件中的配置表无法解码到目标类型。
type DotEnvConfigError struct {
	Name string
	Path string
	Err  error
}

func (e *DotEnvConfigError) Error() string {
	return fmt.Sprintf("error parsing config table [%s] in %q: %v", e.Name, e.Path, e.Err)
}

func (e *DotEnvConfigError) Unwrap() error { return e.Err }

// ConfigVariableError 配置变量既不是合法的内联配置，也不是已存在的文件。
type ConfigVariableError struct {
	Name  string
	Value string
	Err   error
}

func (e *ConfigVariableError) Error() string {
	return fmt.Sprintf("error parsing config environment variable (%s=%q) as the config, "+
		"and no file exists at that path: %v", e.Name, e.Value, e.Err)
}

func (e *ConfigVariableError) Unwrap() error { return e.Err }

// EnvMappingError 映射的环境变量无法写入配置树。
type EnvMappingError struct {
	Name string
	Path KeyPath
	Err  error
}

func (e *EnvMappingError) Error() string {
	return fmt.Sprintf("error mapping environment variable %s to %q: %v", e.Name, e.Path.String(), e.Err)
}

func (e *EnvMappingError) Unwrap() error { return e.Err }

// MergeError 两个来源无法合并。
type MergeError struct {
	From ConfigSource
	Into ConfigSource
	Err  error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("error merging configuration %s into %s: %v", e.From, e.Into, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// DecodeError 合并后的配置无法解码到目标类型。
type DecodeError struct {
	Source ConfigSource
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error parsing merged configuration from %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// describe 返回节点的类型名，用于错误信息。
func describe(v any) string {
	switch typed := v.(type) {
	case nil:
		return "nothing"
	case map[string]any:
		return "table"
	case []any:
		return fmt.Sprintf("array of length %d", len(typed))
	case string:
		return fmt.Sprintf("string %q", typed)
	case int64:
		return fmt.Sprintf("integer %d", typed)
	case float64:
		return fmt.Sprintf("float %v", typed)
	case bool:
		return fmt.Sprintf("boolean %t", typed)
	case time.Time, toml.LocalDateTime, toml.LocalDate, toml.LocalTime:
		return fmt.Sprintf("datetime %v", typed)
	default:
		return fmt.Sprintf("%T", typed)
	}
}
