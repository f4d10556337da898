package renderer

import "github.com/lasbec/simplechords/layout"

// Renderer 将展平后的布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// StyleProvider 为字体名与字号提供测量文本用的样式。
// 布局阶段用它测量，渲染阶段用同样的字体绘制，二者保持一致。
type StyleProvider interface {
	Style(font string, size layout.Length) (layout.TextStyle, error)
}
