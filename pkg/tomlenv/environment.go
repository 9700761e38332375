package tomlenv

import (
	"io/fs"
	"os"
	"strings"
)

// Environment 是进程环境变量的读写能力。
type Environment interface {
	// LookupEnv 读取变量，第二个返回值表示变量是否存在。
	LookupEnv(name string) (string, bool)
	// Setenv 设置变量。
	Setenv(name, value string) error
	// Environ 返回 "NAME=value" 形式的全部变量，顺序不保证。
	Environ() []string
}

// OSEnv 使用真实的进程环境变量。
type OSEnv struct{}

// LookupEnv implements Environment.
func (OSEnv) LookupEnv(name string) (string, bool) { return os.LookupEnv(name) }

// Setenv implements Environment.
func (OSEnv) Setenv(name, value string) error { return os.Setenv(name, value) }

// Environ implements Environment.
func (OSEnv) Environ() []string { return os.Environ() }

// MapEnv 是基于 map 的内存环境变量，适合测试与嵌入场景。
type MapEnv map[string]string

// LookupEnv implements Environment.
func (m MapEnv) LookupEnv(name string) (string, bool) {
	value, ok := m[name]

	return value, ok
}

// Setenv implements Environment.
func (m MapEnv) Setenv(name, value string) error {
	m[name] = value

	return nil
}

// Environ implements Environment.
func (m MapEnv) Environ() []string {
	out := make([]string, 0, len(m))
	for name, value := range m {
		out = append(out, name+"="+value)
	}

	return out
}

// environNames 返回 Environ 中的变量名，跳过没有名称的条目。
func environNames(env Environment) []string {
	entries := env.Environ()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, _, _ := strings.Cut(entry, "=")
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return names
}

// FileSystem 是读取配置文件所需的文件系统能力。
//
// fstest.MapFS 也满足该接口，便于测试。
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFS 使用真实的文件系统。
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // path comes from caller configuration
}

// Stat implements FileSystem.
func (OSFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// isFile 判断 path 是否为已存在的普通文件。
func isFile(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
