package binding

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是模板求值时可用的变量表。
type Vars = map[string]any

// step 是路径中的一步：按名字取 map 的值，或按下标取切片元素。
type step struct {
	key   string
	index int
	isIdx bool
}

// parsePath 把 "song.keys[1]" 解析为 [song keys [1]]；格式错误时返回 false。
func parsePath(path string) ([]step, bool) {
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		name, rest, found := strings.Cut(segment, "[")
		if name == "" && (!found || len(steps) == 0) {
			return nil, false
		}
		if name != "" {
			steps = append(steps, step{key: name})
		}
		if found {
			rest = "[" + rest
		}
		for rest != "" {
			end := strings.IndexByte(rest, ']')
			if rest[0] != '[' || end == -1 {
				return nil, false
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil, false
			}
			steps = append(steps, step{index: idx, isIdx: true})
			rest = rest[end+1:]
		}
	}
	return steps, len(steps) > 0
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		steps, ok := parsePath(strings.TrimSpace(match[2 : len(match)-1]))
		if !ok {
			return match
		}
		if val, ok := walk(data, steps); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Placeholders 按出现顺序返回模板中的所有路径（去掉首尾空白，不去重）。
func Placeholders(text string) []string {
	var res []string
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		res = append(res, strings.TrimSpace(groups[1]))
	}
	return res
}

// Check 确认模板只引用 allowed 中的顶层名字。
func Check(text string, allowed ...string) error {
	for _, p := range Placeholders(text) {
		steps, ok := parsePath(p)
		if !ok {
			return fmt.Errorf("malformed placeholder ${%s}", p)
		}
		if !slices.Contains(allowed, steps[0].key) {
			return fmt.Errorf("unknown placeholder ${%s}, allowed: %s", p, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func walk(current any, steps []step) (any, bool) {
	for _, s := range steps {
		var ok bool
		if s.isIdx {
			current, ok = element(current, s.index)
		} else {
			current, ok = field(current, s.key)
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func field(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	}
	return nil, false
}

func element(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx >= 0 && idx < len(c) {
			return c[idx], true
		}
	case []string:
		if idx >= 0 && idx < len(c) {
			return c[idx], true
		}
	}
	return nil, false
}
