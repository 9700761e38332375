// Package logsink 将 tomlenv 的诊断信息转发到 zap 或 zerolog。
//
// tomlenv 本身只依赖 [tomlenv.Logger]，这里的适配器让已经使用 zap 或 zerolog 的程序
// 把配置加载过程写进同一条日志流：
//
//	logger, _ := zap.NewProduction()
//	cfg, err := tomlenv.Load[Config](
//	    tomlenv.WithLogger(logsink.Zap(logger.Sugar())),
//	)
package logsink

import (
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

// Component 附加在每条日志上的 component 字段值。
const Component = "tomlenv"

// Zap 以 Info 级别写入 zap，l 为 nil 时使用 zap.S()。
func Zap(l *zap.SugaredLogger) tomlenv.Logger {
	if l == nil {
		l = zap.S()
	}

	return tomlenv.LoggerFunc(func(line string) {
		l.Infow(line, "component", Component)
	})
}

// Zerolog 以 Info 级别写入 zerolog。
func Zerolog(l zerolog.Logger) tomlenv.Logger {
	return tomlenv.LoggerFunc(func(line string) {
		l.Info().Str("component", Component).Msg(line)
	})
}
