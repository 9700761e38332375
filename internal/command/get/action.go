package get

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-tomlenv/internal/command"
	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/tomlenv"
)

// ErrNotFound 路径在合并后的配置中不存在。
var ErrNotFound = errors.New("key not found")

func action(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one key path argument, got %d", cmd.Args().Len())
	}
	path, err := tomlenv.ParseKeyPath(cmd.Args().First())
	if err != nil {
		return err
	}
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
	if doc == nil {
		return fmt.Errorf("%w: %s (no configuration found)", ErrNotFound, path)
	}

	value, ok := doc.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrNotFound, path, doc.Source)
	}

	w := command.Writer(cmd)
	if s, ok := tomlenv.FormatScalar(value); ok {
		_, err = fmt.Fprintln(w, s)

		return err
	}

	// TOML 顶层必须是表，数组以最后一个片段为 key 输出
	if _, isArray := value.([]any); isArray && format == tomlenv.FormatTOML {
		value = map[string]any{path[len(path)-1].String(): value}
	}

	return tomlenv.Encode(w, value, format)
}
