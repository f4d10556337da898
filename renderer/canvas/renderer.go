package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/lasbec/simplechords/fonts"
	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer draws flattened pages via github.com/tdewolff/canvas and measures
// text with the same font faces it draws with.
type Renderer struct {
	baseDir string

	// injected resources, by unique name
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer      = (*Renderer)(nil)
	_ renderer.StyleProvider = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// BaseDir resolves relative font paths. Without it only built-in and
	// injected fonts are available.
	BaseDir string
	// Fonts are accessible by their key, before the built-in fonts.
	Fonts map[string]Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving font files.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected fonts and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // caught when the font is used
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render 将展平后的页面输出为 PDF 字节切片。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nothing to render")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("no pages to render")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		// 布局引擎的原点在左下角，y 轴向上
		ctx.SetCoordSystem(canvas.CartesianI)

		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// Style 实现 renderer.StyleProvider：按字体名与字号返回测量样式。
func (r *Renderer) Style(font string, size layout.Length) (layout.TextStyle, error) {
	if !size.Gtz() {
		return nil, fmt.Errorf("font %q: size must be positive, got %s", font, size)
	}
	face, err := r.fontFace(font, size.ToPT(), layout.Black)
	if err != nil {
		return nil, err
	}
	return &textStyle{name: fontName(font), size: size, face: face}, nil
}

// textStyle measures with a canvas font face. canvas reports widths and
// metrics in mm.
type textStyle struct {
	name string
	size layout.Length
	face *canvas.FontFace
}

func (s *textStyle) WidthOfText(text string) layout.Length {
	return layout.MM(s.face.TextWidth(text))
}

func (s *textStyle) LineHeight() layout.Length {
	return layout.MM(s.face.Metrics().LineHeight)
}

func (s *textStyle) FontName() string        { return s.name }
func (s *textStyle) FontSize() layout.Length { return s.size }

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	// 先绘制形状，再绘制文本
	r.drawRects(ctx, page.Rects)
	r.drawCircles(ctx, page.Circles)
	r.drawLines(ctx, page.Lines)
	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	return nil
}

// drawTextBox 绘制单行文本；(X, Y) 是文本框左下角，基线位于其上方一个下降部的位置。
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	if tb.Content == "" {
		return nil
	}
	size := tb.FontSize
	if size <= 0 {
		size = 10
	}
	face, err := r.fontFace(tb.Font, size, tb.Color)
	if err != nil {
		return err
	}
	line := canvas.NewTextLine(face, tb.Content, canvas.Left)
	baseline := tb.Y + face.Metrics().Descent
	ctx.DrawText(tb.X, baseline, line)
	return nil
}

// drawLines 绘制直线列表（毫米单位）
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
}

// drawRects 绘制矩形
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		w := rc.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(colorFromLayout(rc.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

// drawCircles 绘制圆形
func (r *Renderer) drawCircles(ctx *canvas.Context, circles []layout.Circle) {
	for _, c := range circles {
		w := c.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if c.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*c.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(colorFromLayout(c.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(c.CX, c.CY, canvas.Circle(c.R))
	}
}

func fontName(font string) string {
	if font == "" {
		return fonts.Default
	}
	return font
}

func (r *Renderer) fontFace(font string, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(fontName(font))
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily loads every font into a family of its own, so a style
// name like go-bold-italic selects the file and not a synthetic variant.
func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[name]; ok {
		return family, nil
	}
	data, err := r.loadFontBytes(name)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("loading font %q: %w", name, err)
	}
	r.fontFamilies[name] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(name string) ([]byte, error) {
	if blob, ok := r.fontBlobs[name]; ok {
		return blob, nil
	}
	if fonts.IsBuiltin(name) {
		return fonts.Load(name)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".ttf" && ext != ".otf" {
		return nil, fmt.Errorf("unknown font %q (built-in: %s)", name, strings.Join(fonts.Names(), ", "))
	}
	path := name
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("font path %s needs a base directory", name)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
