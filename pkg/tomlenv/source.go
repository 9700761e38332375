package tomlenv

import (
	"fmt"
	"strings"
)

// SourceKind 配置来源的类别。
type SourceKind uint8

const (
	// SourceUnknown 零值，表示没有来源。
	SourceUnknown SourceKind = iota
	// SourceMerged 由两个来源合并而来。
	SourceMerged
	// SourceDotEnv 来自 .env.toml 格式文件。
	SourceDotEnv
	// SourceFile 来自配置文件。
	SourceFile
	// SourceEnvironment 来自环境变量。
	SourceEnvironment
)

// String 返回来源类别名称。
func (k SourceKind) String() string {
	switch k {
	case SourceUnknown:
		return "unknown"
	case SourceMerged:
		return "merged"
	case SourceDotEnv:
		return "dotenv"
	case SourceFile:
		return "file"
	case SourceEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// ConfigSource 记录一份配置来自哪里，仅用于日志与错误信息。
//
// Kind 为 [SourceMerged] 时 From 与 Into 非空：From 为后合并进来的（优先级更高的）来源，
// Into 为此前已累积的结果。整体构成一棵反映合并历史的树。
type ConfigSource struct {
	Kind          SourceKind
	Path          string
	VariableNames []string
	From          *ConfigSource
	Into          *ConfigSource
}

// DotEnvSource 返回 dotenv 文件来源。
func DotEnvSource(path string) ConfigSource {
	return ConfigSource{Kind: SourceDotEnv, Path: path}
}

// FileSource 返回配置文件来源。
func FileSource(path string) ConfigSource {
	return ConfigSource{Kind: SourceFile, Path: path}
}

// EnvironmentSource 返回环境变量来源。
func EnvironmentSource(names ...string) ConfigSource {
	return ConfigSource{Kind: SourceEnvironment, VariableNames: names}
}

// MergedSource 返回 from 合并进 into 后的来源。
func MergedSource(from, into ConfigSource) ConfigSource {
	return ConfigSource{Kind: SourceMerged, From: &from, Into: &into}
}

func (s ConfigSource) String() string {
	switch s.Kind {
	case SourceMerged:
		if s.From == nil || s.Into == nil {
			return "unknown source"
		}

		return fmt.Sprintf("(%s) merged into (%s)", s.From, s.Into)
	case SourceDotEnv:
		return fmt.Sprintf("dotenv TOML file %q", s.Path)
	case SourceFile:
		return fmt.Sprintf("config file %q", s.Path)
	case SourceEnvironment:
		return "environment variables " + strings.Join(s.VariableNames, ", ")
	default:
		return "unknown source"
	}
}

// Leaves 按优先级从低到高返回参与合并的原始来源。
//
// 零值来源返回空切片。
func (s ConfigSource) Leaves() []ConfigSource {
	switch s.Kind {
	case SourceUnknown:
		return nil
	case SourceMerged:
	default:
		return []ConfigSource{s}
	}

	var leaves []ConfigSource
	if s.Into != nil {
		leaves = append(leaves, s.Into.Leaves()...)
	}
	if s.From != nil {
		leaves = append(leaves, s.From.Leaves()...)
	}

	return leaves
}
