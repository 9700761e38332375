package tomlenv

import "slices"

// Insert 将 value 写入 root 中 path 指向的位置。
//
// 缺失的中间节点会按下一个片段的类型自动创建：下标创建数组，属性创建表。
// 数组下标等于数组长度时追加，大于长度时返回 [ArrayOutOfBoundsError]。
// 已存在的值直接覆盖。表与数组之间从不隐式转换，类型不符时返回
// [TablePropertyCannotIndexError] 或 [ArrayIndexCannotIndexError]。
// 空路径直接替换 *root。
func Insert(root *any, path KeyPath, value any) error {
	updated, err := insertAt(*root, path, value)
	if err != nil {
		return err
	}
	*root = updated

	return nil
}

// insertAt 返回写入后的节点；数组追加可能产生新的切片，需要由调用方回写。
func insertAt(node any, path KeyPath, value any) (any, error) {
	if len(path) == 0 {
		return value, nil
	}

	segment, rest := path[0], path[1:]
	if segment.IsIndex {
		return insertIndex(node, segment.Index, rest, value)
	}

	return insertProperty(node, segment.Property, rest, value)
}

func insertProperty(node any, property string, rest KeyPath, value any) (any, error) {
	table, ok := node.(map[string]any)
	if !ok {
		return nil, &TablePropertyCannotIndexError{Property: property, Value: node}
	}

	child, present := table[property]
	if !present {
		if len(rest) == 0 {
			table[property] = value

			return table, nil
		}
		child = emptyContainer(rest[0])
	}

	updated, err := insertAt(child, rest, value)
	if err != nil {
		return nil, err
	}
	table[property] = updated

	return table, nil
}

func insertIndex(node any, index int, rest KeyPath, value any) (any, error) {
	array, ok := node.([]any)
	if !ok {
		return nil, &ArrayIndexCannotIndexError{Index: index, Value: node}
	}
	if index < 0 || index > len(array) {
		return nil, &ArrayOutOfBoundsError{Index: index, Array: array}
	}

	if index == len(array) {
		if len(rest) == 0 {
			return slices.Insert(array, index, value), nil
		}
		updated, err := insertAt(emptyContainer(rest[0]), rest, value)
		if err != nil {
			return nil, err
		}

		return slices.Insert(array, index, updated), nil
	}

	updated, err := insertAt(array[index], rest, value)
	if err != nil {
		return nil, err
	}
	array[index] = updated

	return array, nil
}

func emptyContainer(next PathElement) any {
	if next.IsIndex {
		return []any{}
	}

	return map[string]any{}
}

// Merge 将 higher 深度合并到 lower 上，返回新的树，不修改任何输入。
//
// 两边都是表时逐 key 递归合并；数组与标量由 higher 整体替换（数组不做逐元素合并）。
// 同一位置上一边是表、数组或标量而另一边形状不同时，返回 [MergeConflictError]。
// 任一边为 nil 时返回另一边的副本。
func Merge(lower, higher any) (any, error) {
	return mergeAt(nil, lower, higher)
}

func mergeAt(path KeyPath, lower, higher any) (any, error) {
	if lower == nil {
		return Clone(higher), nil
	}
	if higher == nil {
		return Clone(lower), nil
	}

	if shapeOf(lower) != shapeOf(higher) {
		return nil, &MergeConflictError{Path: slices.Clone(path), Lower: lower, Higher: higher}
	}

	lowerTable, ok := lower.(map[string]any)
	if !ok {
		return Clone(higher), nil
	}
	higherTable := higher.(map[string]any) //nolint:forcetypeassert // shapes are equal

	out := make(map[string]any, len(lowerTable)+len(higherTable))
	for key, value := range lowerTable {
		out[key] = Clone(value)
	}
	for key, value := range higherTable {
		merged, err := mergeAt(append(path, Property(key)), out[key], value)
		if err != nil {
			return nil, err
		}
		out[key] = merged
	}

	return out, nil
}

type shape uint8

const (
	shapeScalar shape = iota
	shapeTable
	shapeArray
)

func shapeOf(v any) shape {
	switch v.(type) {
	case map[string]any:
		return shapeTable
	case []any:
		return shapeArray
	default:
		return shapeScalar
	}
}

// Clone 深拷贝配置树中的表与数组，标量按值复制。
func Clone(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = Clone(value)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = Clone(value)
		}

		return out
	default:
		return v
	}
}
