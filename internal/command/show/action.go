package show

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command"
	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

func action(_ context.Context, cmd *cli.Command) error {
	format, err := tomlenv.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	args, cleanup, err := command.ArgsFromCommand(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := tomlenv.LoadDocument(args)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	w := command.Writer(cmd)
	if doc == nil {
		_, err = fmt.Fprintln(w, "# no configuration found")

		return err
	}

	// JSON 没有注释语法，不输出来源
	if format != tomlenv.FormatJSON {
		if err := writeSources(w, doc.Source); err != nil {
			return err
		}
	}

	return tomlenv.Encode(w, doc.Tree, format)
}

// writeSources 以注释形式按优先级从低到高列出来源。
func writeSources(w io.Writer, source tomlenv.ConfigSource) error {
	if _, err := fmt.Fprintln(w, "# sources (lowest precedence first):"); err != nil {
		return err
	}
	for _, leaf := range source.Leaves() {
		if _, err := fmt.Fprintf(w, "#   %s\n", leaf); err != nil {
			return err
		}
	}

	return nil
}
