package tomlenv

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger 接收加载过程中的诊断信息，每次一行。
//
// 内容仅供阅读，格式不是兼容性承诺。
type Logger interface {
	Emit(line string)
}

// LoggerFunc 将普通函数适配为 [Logger]。
type LoggerFunc func(line string)

// Emit implements Logger.
func (f LoggerFunc) Emit(line string) { f(line) }

type discard struct{}

func (discard) Emit(string) {}

// Discard 丢弃所有诊断信息，为默认值。
var Discard Logger = discard{}

// Stdout 将诊断信息写到标准输出。
//
// 适合日志系统本身依赖这份配置、尚未初始化的启动阶段。
func Stdout() Logger {
	return Writer(os.Stdout)
}

// Writer 将诊断信息以 "INFO tomlenv: ..." 的形式写入 w。
func Writer(w io.Writer) Logger {
	return LoggerFunc(func(line string) {
		_, _ = fmt.Fprintf(w, "INFO tomlenv: %s\n", line)
	})
}

// Slog 将诊断信息以 Info 级别转发到 slog。
func Slog(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}

	return LoggerFunc(func(line string) {
		l.Info(line, "component", "tomlenv")
	})
}

// enabled 判断 l 是否会真正输出，避免构造无用的日志内容。
func enabled(l Logger) bool {
	_, isDiscard := l.(discard)

	return l != nil && !isDiscard
}
