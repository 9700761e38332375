package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command/get"
	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command/show"
)

// Version 由构建时 -ldflags "-X main.Version=..." 注入。
var Version = "dev"

func main() {
	app := &cli.Command{
		Name:    "tomlenv",
		Usage:   "分层 TOML 配置查看工具",
		Version: Version,
		Commands: []*cli.Command{
			show.Command,
			get.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
