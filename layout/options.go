package layout

import (
	"strconv"

	"github.com/charmbracelet/log"
)

// RenderMode 决定溢出如何处理：调试模式下记录警告并画出标记，生产模式下返回错误。
type RenderMode int

const (
	RenderProduction RenderMode = iota
	RenderDebug
)

func (m RenderMode) String() string {
	switch m {
	case RenderProduction:
		return "production"
	case RenderDebug:
		return "debug"
	}
	return "RenderMode(" + strconv.Itoa(int(m)) + ")"
}

// FlattenOptions 配置展平阶段。
type FlattenOptions struct {
	Mode   RenderMode
	Logger *log.Logger
	// PageNumbers 为 nil 时不输出页码。
	PageNumbers *PageNumbering
	Meta        DocumentMeta
}

// PageNumbering 描述页码的样式与位置。页码位于页面外侧（右页靠右，左页靠左）。
type PageNumbering struct {
	// Template 支持 ${page} 与 ${pages} 占位符。
	Template string
	Style    TextStyle
	// First 是第一页的页码。
	First int
	// Bottom 是页码基线框到页面下边缘的距离，Margin 是到外侧边缘的距离。
	Bottom    Length
	Margin    Length
	FirstPage PageSide
}

func (o FlattenOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
