package tomlenv

import (
	"cmp"
	"strconv"
	"strings"
)

// PathElement 是 [KeyPath] 的一个片段：表属性或数组下标。
type PathElement struct {
	Property string
	Index    int
	IsIndex  bool
}

// Property 返回表属性片段。
func Property(name string) PathElement {
	return PathElement{Property: name}
}

// Index 返回数组下标片段。
func Index(i int) PathElement {
	return PathElement{Index: i, IsIndex: true}
}

func (e PathElement) String() string {
	if e.IsIndex {
		return strconv.Itoa(e.Index)
	}

	return e.Property
}

// KeyPath 指向配置树中的一个位置，格式为 "key.key.0.key"。
type KeyPath []PathElement

// ParseKeyPath 按 "." 切分并解析路径。
//
// 纯数字片段解析为数组下标（前导零的片段如 "007" 仍视为表属性，保证往返一致），
// 其余片段为表属性。空字符串或任何空片段都会返回 [KeyPathError]。
func ParseKeyPath(s string) (KeyPath, error) {
	if s == "" {
		return nil, &KeyPathError{Path: s}
	}

	segments := strings.Split(s, ".")
	path := make(KeyPath, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			return nil, &KeyPathError{Path: s}
		}
		path = append(path, parseSegment(segment))
	}

	return path, nil
}

// MustParseKeyPath 调用 [ParseKeyPath]，失败时 panic，适合字面量路径。
func MustParseKeyPath(s string) KeyPath {
	path, err := ParseKeyPath(s)
	if err != nil {
		panic(err)
	}

	return path
}

func parseSegment(segment string) PathElement {
	if !isCanonicalIndex(segment) {
		return Property(segment)
	}
	i, err := strconv.Atoi(segment)
	if err != nil {
		// 超出 int 范围
		return Property(segment)
	}

	return Index(i)
}

func isCanonicalIndex(segment string) bool {
	if len(segment) > 1 && segment[0] == '0' {
		return false
	}
	for i := range len(segment) {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}

	return true
}

// String 以 "." 连接各片段。
func (p KeyPath) String() string {
	parts := make([]string, len(p))
	for i, e := range p {
		parts[i] = e.String()
	}

	return strings.Join(parts, ".")
}

// Resolve 沿路径读取 tree 中的值，不修改 tree。
//
// 表属性遇到非表、下标遇到非数组、key 不存在或下标越界（含负数）时返回 false。
// 空路径返回 tree 本身。
func (p KeyPath) Resolve(tree any) (any, bool) {
	current := tree
	for _, e := range p {
		if e.IsIndex {
			array, ok := current.([]any)
			if !ok || e.Index < 0 || e.Index >= len(array) {
				return nil, false
			}
			current = array[e.Index]

			continue
		}

		table, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		child, ok := table[e.Property]
		if !ok {
			return nil, false
		}
		current = child
	}

	return current, true
}

// Compare 按片段逐一比较两个路径：下标按数值比较，属性按字典序比较，
// 同一位置上下标排在属性之前，较短的前缀排在前面。
func (p KeyPath) Compare(other KeyPath) int {
	for i := range min(len(p), len(other)) {
		a, b := p[i], other[i]
		switch {
		case a.IsIndex && b.IsIndex:
			if c := cmp.Compare(a.Index, b.Index); c != 0 {
				return c
			}
		case a.IsIndex:
			return -1
		case b.IsIndex:
			return 1
		default:
			if c := strings.Compare(a.Property, b.Property); c != 0 {
				return c
			}
		}
	}

	return cmp.Compare(len(p), len(other))
}
