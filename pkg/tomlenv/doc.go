// Package tomlenv 从多个来源加载 TOML 配置，合并后解码到调用方的结构体。
//
// 配置文档统一使用 TOML 的动态结构表示：map[string]any 为表，[]any 为数组，
// 其余为标量（string、int64、float64、bool、时间类型）。
//
// # 加载优先级 (从低到高)
//
//  1. dotenv 文件 - 默认 .env.toml，其中名为 CONFIG 的表作为配置
//  2. 配置变量 - 环境变量 CONFIG，内容为内联 TOML 或配置文件路径
//  3. 环境变量映射 - 通过 [WithEnvMapping] 显式指定或 [WithAutoMapEnv] 自动发现
//  4. 配置文件 - 通过 [WithConfigPath] 指定，最高优先级
//
// 表按 key 递归合并；数组与标量由高优先级一方整体替换。
// 同一 key 上形状不兼容（表、数组、标量之间）时返回 [MergeError]。
//
// # 快速开始
//
//	type Config struct {
//	    Name  string `toml:"name"`
//	    Ports []int  `toml:"ports"`
//	}
//
//	cfg, err := tomlenv.Load[Config](
//	    tomlenv.WithConfigPath("config.toml"),
//	    tomlenv.WithAutoMapEnv(tomlenv.DefaultAutoMapEnv()),
//	)
//	if err != nil {
//	    return err
//	}
//
// 需要区分"没有任何配置"时使用 [Initialize]，此时返回 (nil, nil)：
//
//	args := tomlenv.DefaultArgs()
//	args.ConfigPath = "config.toml"
//	cfg, err := tomlenv.Initialize[Config](args)
//
// # .env.toml 格式
//
// 顶层只允许标量与一个名为 CONFIG 的表：
//
//	DATABASE_URL = "postgres://localhost/app"
//	WORKERS = 4
//
//	[CONFIG]
//	name = "dev"
//
// 顶层标量会写入进程环境变量（覆盖已有值），供后续的环境变量映射读取。
// 数组以及其他表会被视为格式错误。
//
// # 环境变量映射
//
// 自动发现时，前缀为 Prefix（默认与配置变量同名）加分隔符。
// 去掉前缀后的名称经过 Transform（默认转小写），分隔符替换为 "."，再解析为 [KeyPath]：
//   - CONFIG__NAME → name
//   - CONFIG__SERVER__PORT → server.port
//   - CONFIG__HOSTS__0 → hosts.0（数组下标）
//
// 变量值按 bool → float → int → datetime → string 的顺序尝试解析，
// 因此 "1" 会得到 float64(1)。
//
// 写入顺序按 [KeyPath] 排序（数组下标按数值比较），与操作系统枚举环境变量的顺序无关，
// 保证同一数组的下标总是递增到达。
//
// # 错误
//
// 来源缺失（文件不存在、变量未设置）不是错误；只有存在但内容有误的来源才会报错。
// 所有错误都携带路径、来源与底层原因，可用 errors.Is / errors.As 判断：
// [ErrInvalidKeyPath]、[ErrTypeMismatch]、[ErrOutOfBounds]、[ErrMergeConflict]、[ErrDotEnvFormat]。
package tomlenv
