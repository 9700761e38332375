package expand

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrRequired 必填变量未设置（${VAR:?msg} / ${VAR?msg}）。
var ErrRequired = errors.New("required variable not set")

// RequiredError 记录未通过必填校验的变量。
type RequiredError struct {
	Name    string
	Message string
}

func (e *RequiredError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("expand: %s: parameter null or not set", e.Name)
	}

	return fmt.Sprintf("expand: %s: %s", e.Name, e.Message)
}

func (e *RequiredError) Is(target error) bool { return target == ErrRequired }

// LookupFunc 读取变量，第二个返回值表示变量是否已设置。
type LookupFunc func(name string) (string, bool)

// Expander 使用固定的变量来源执行展开，可重复使用。
type Expander struct {
	lookup LookupFunc
}

// New 创建 Expander，lookup 为 nil 时读取进程环境变量。
func New(lookup LookupFunc) *Expander {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return &Expander{lookup: lookup}
}

// Env 使用进程环境变量展开 text。
func Env(text string) (string, error) {
	return New(nil).Expand(text)
}

// Expand 展开 text 中的 ${...} 表达式。
//
// ":=" 赋值只写入本次展开的作用域，不会修改变量来源。
// 仅在必填校验失败时返回错误，错误匹配 [ErrRequired]。
func (e *Expander) Expand(text string) (string, error) {
	s := &scope{lookup: e.lookup, assigned: make(map[string]string)}

	return s.expandText(text)
}

// scope 是一次展开的变量视图：先查本次赋值，再查变量来源。
type scope struct {
	lookup   LookupFunc
	assigned map[string]string
}

func (s *scope) get(name string) (string, bool) {
	if v, ok := s.assigned[name]; ok {
		return v, true
	}

	return s.lookup(name)
}

func (s *scope) expandText(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++

			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2

			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++

			continue
		}

		end := closingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte('$')
			i++

			continue
		}

		expanded, ok, err := s.expandExpr(text[i+2 : end])
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(text[i : end+1])
		}
		i = end + 1
	}

	return buf.String(), nil
}

// expandWord 展开操作符右侧的 word，word 中可以嵌套 ${...}。
func (s *scope) expandWord(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return s.expandText(word)
}

// expandExpr 展开 ${...} 内部的表达式；第二个返回值为 false 表示无法识别。
func (s *scope) expandExpr(expr string) (string, bool, error) {
	name, op, word, ok := parseExpr(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := s.get(name)
	// 带冒号的操作符把空值视为未设置
	unset := !isSet
	if strings.HasPrefix(op, ":") {
		unset = !isSet || val == ""
	}

	switch strings.TrimPrefix(op, ":") {
	case "":
		return val, true, nil
	case "-":
		if unset {
			return s.wordResult(word)
		}

		return val, true, nil
	case "+":
		if unset {
			return "", true, nil
		}

		return s.wordResult(word)
	case "?":
		if unset {
			return "", false, &RequiredError{Name: name, Message: word}
		}

		return val, true, nil
	case "=":
		if unset {
			expanded, err := s.expandWord(word)
			if err != nil {
				return "", false, err
			}
			s.assigned[name] = expanded

			return expanded, true, nil
		}

		return val, true, nil
	}

	return "", false, nil
}

func (s *scope) wordResult(word string) (string, bool, error) {
	expanded, err := s.expandWord(word)
	if err != nil {
		return "", false, err
	}

	return expanded, true, nil
}

// parseExpr 拆分 NAME、操作符与 word。
func parseExpr(expr string) (string, string, string, bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return "", "", "", false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}

	name, rest := expr[:i], expr[i:]
	if rest == "" {
		return name, "", "", true
	}
	if len(rest) >= 2 && rest[0] == ':' && strings.IndexByte("-+?=", rest[1]) >= 0 {
		return name, rest[:2], rest[2:], true
	}
	if strings.IndexByte("-+?=", rest[0]) >= 0 {
		return name, rest[:1], rest[1:], true
	}

	return "", "", "", false
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// closingBrace 返回与 start 之前的 "${" 匹配的 "}" 位置，跳过嵌套的 ${...}。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}
