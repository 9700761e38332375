// Package show 提供显示合并后配置的命令。
package show

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command"
)

// Command show 命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "显示合并后的配置及其来源",
		Action: action,
		Flags:  append(command.Flags(), command.FormatFlag()),
	}
}
