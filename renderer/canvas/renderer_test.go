package canvasrenderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/lasbec/simplechords/layout"
)

func TestStyleMeasuresWithFontFace(t *testing.T) {
	r := NewRenderer("")
	style, err := r.Style("go-regular", layout.PT(11))
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if style.FontName() != "go-regular" {
		t.Fatalf("FontName() = %q", style.FontName())
	}
	if !style.FontSize().Eq(layout.PT(11)) {
		t.Fatalf("FontSize() = %s", style.FontSize())
	}

	one := style.WidthOfText("a").ToMM()
	two := style.WidthOfText("aa").ToMM()
	if one <= 0 {
		t.Fatalf("width of a = %vmm", one)
	}
	if two <= one {
		t.Fatalf("width of aa = %vmm, not wider than a (%vmm)", two, one)
	}
	if w := style.WidthOfText("").ToMM(); w != 0 {
		t.Fatalf("width of empty text = %vmm", w)
	}
	// an 11pt line is a little higher than 11pt
	if h := style.LineHeight().ToPT(); h < 11 || h > 16 {
		t.Fatalf("line height = %vpt", h)
	}
}

func TestStyleScalesWithSize(t *testing.T) {
	r := NewRenderer("")
	small, err := r.Style("go-bold", layout.PT(9))
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	large, err := r.Style("go-bold", layout.PT(18))
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	ws, wl := small.WidthOfText("Am7").ToMM(), large.WidthOfText("Am7").ToMM()
	if math.Abs(wl-2*ws) > 1e-3 {
		t.Fatalf("18pt width %v is not twice the 9pt width %v", wl, ws)
	}
}

func TestStyleRejectsUnknownFontsAndSizes(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Style("Inter-Regular", layout.PT(10)); err == nil {
		t.Fatalf("expected an error for an unknown font")
	}
	if _, err := r.Style("missing.ttf", layout.PT(10)); err == nil {
		t.Fatalf("expected an error for a font path without a base directory")
	}
	if _, err := r.Style("go-regular", layout.Zero); err == nil {
		t.Fatalf("expected an error for a zero size")
	}
}

func TestRenderWritesPDF(t *testing.T) {
	r := NewRenderer("")
	fill := layout.Red
	res := &layout.Result{
		Meta: layout.DocumentMeta{Title: "Songs", Creator: "simplechords"},
		Pages: []layout.Page{
			{
				Number: 1, Width: 148.5, Height: 210,
				Texts: []layout.TextBox{
					{Content: "Am", X: 10, Y: 190, Font: "go-bold-italic", FontSize: 9},
					{Content: "la la", X: 10, Y: 185, Font: "go-regular", FontSize: 11},
					{Content: "0", X: 20, Y: 20},
				},
				Rects:   []layout.Rect{{X: 5, Y: 5, Width: 10, Height: 10, FillColor: &fill}},
				Circles: []layout.Circle{{CX: 50, CY: 50, R: 2}},
				Lines:   []layout.Line{{X1: 0, Y1: 0, X2: 10, Y2: 10}},
			},
			{Number: 2, Width: 148.5, Height: 210},
		},
	}
	data, err := r.Render(res)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderFailsOnUnknownFont(t *testing.T) {
	r := NewRenderer("")
	res := &layout.Result{Pages: []layout.Page{{
		Number: 1, Width: 100, Height: 100,
		Texts: []layout.TextBox{{Content: "x", Font: "nope", FontSize: 10}},
	}}}
	if _, err := r.Render(res); err == nil {
		t.Fatalf("expected an error for an unknown font")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected an error for a result without pages")
	}
}

func TestInjectedFontsWin(t *testing.T) {
	base := NewRenderer("")
	bold, err := base.loadFontBytes("go-bold")
	if err != nil {
		t.Fatalf("loadFontBytes: %v", err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"Body": {Bytes: bold}}})
	style, err := r.Style("Body", layout.PT(10))
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	want, _ := base.Style("go-bold", layout.PT(10))
	if !style.WidthOfText("Body").Eq(want.WidthOfText("Body")) {
		t.Fatalf("injected font measures differently from go-bold")
	}
}
