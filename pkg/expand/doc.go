// Package expand 对配置文件内容执行 Shell 参数展开。
//
// 只处理 ${...} 语法，不执行命令、不引入模板引擎。变量通过 [LookupFunc] 读取，
// 因此既可以读取进程环境变量，也可以读取内存中的环境（测试、嵌入场景）。
//
// # 支持的语法
//
//   - ${VAR} 变量替换，未设置时为空
//   - ${VAR:-word} / ${VAR-word} 默认值
//   - ${VAR:+word} / ${VAR+word} 替代值
//   - ${VAR:?msg} / ${VAR?msg} 必填校验
//   - ${VAR:=word} / ${VAR=word} 赋值，仅作用于当前展开
//   - $$ 字面量 $
//
// 带冒号的形式把空值视为未设置。word 内部可以继续嵌套 ${...}。
// 无法识别的表达式保持原样。
//
// # 快速开始
//
//	content := `url = "${DATABASE_URL:-postgres://localhost/app}"`
//	expanded, err := expand.Env(content)
//
// 使用自定义变量来源：
//
//	e := expand.New(func(name string) (string, bool) {
//	    v, ok := vars[name]
//	    return v, ok
//	})
//	expanded, err := e.Expand(content)
//
// 参考: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
package expand
