// Package get 提供按路径读取配置值的命令。
package get

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command"
)

// Command get 命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "读取合并后配置中的一个值",
		ArgsUsage: "<key.path>",
		Action:    action,
		Flags:     append(command.Flags(), command.FormatFlag()),
	}
}
