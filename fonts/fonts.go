// Package fonts 提供内置的 Go 字体，按名字取用。
package fonts

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的名字。
const Default = "go-regular"

var builtin = map[string][]byte{
	"go-regular":     goregular.TTF,
	"go-bold":        gobold.TTF,
	"go-italic":      goitalic.TTF,
	"go-bold-italic": gobolditalic.TTF,
	"go-mono":        gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in font %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 列出所有内置字体，按字母排序。
func Names() []string {
	res := make([]string, 0, len(builtin))
	for name := range builtin {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// IsBuiltin reports whether name refers to a built-in font.
func IsBuiltin(name string) bool {
	_, ok := builtin[strings.ToLower(strings.TrimPrefix(name, "embed:"))]
	return ok
}
