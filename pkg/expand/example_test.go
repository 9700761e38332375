package expand_test

import (
	"fmt"
	"os"

	"github.com/lwmacct/251207-go-pkg-tomlenv/pkg/expand"
)

// Example_env 演示读取进程环境变量。
func Example_env() {
	_ = os.Setenv("EXPAND_EXAMPLE_KEY", "sk-12345")
	defer func() { _ = os.Unsetenv("EXPAND_EXAMPLE_KEY") }()

	result, _ := expand.Env(`key = "${EXPAND_EXAMPLE_KEY}"`)
	fmt.Println(result)

	// Output:
	// key = "sk-12345"
}

// Example_fallback 演示默认值回退。
func Example_fallback() {
	e := expand.New(func(string) (string, bool) { return "", false })
	result, _ := e.Expand(`host = "${HOST:-localhost}"`)
	fmt.Println(result)

	// Output:
	// host = "localhost"
}

// Example_assign 演示 := 赋值仅在当前展开内生效。
func Example_assign() {
	e := expand.New(func(string) (string, bool) { return "", false })
	result, _ := e.Expand(`${MODEL:=gpt-4}-${MODEL}`)
	fmt.Println(result)

	// Output:
	// gpt-4-gpt-4
}
