package layout

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/lasbec/simplechords/binding"
)

// levelColors mirrors the depth of a box in debug rectangles.
var levelColors = map[int]Color{
	0: {R: 204, G: 51, B: 0},
	1: {R: 51, G: 230, B: 26},
	2: {R: 230, G: 128, B: 26},
	3: {R: 128, G: 128, B: 128},
}

var (
	debugStrokeWidth = PT(1).ToMM()
	debugCircleR     = PT(5).ToMM()
	debugLabelSize   = 6.0
)

// Flatten turns finished page trees into draw primitives. Every box is
// checked against its parent: in debug mode an overflow is logged and
// marked in red, in production mode all overflows are returned as errors
// wrapping ErrOverflow.
func Flatten(pages []*Box, opts FlattenOptions) (*Result, error) {
	res := &Result{Meta: opts.Meta}
	var errs error
	for i, root := range pages {
		f := &flattener{
			mode:   opts.Mode,
			logger: opts.logger().With("page", i+1),
			origin: root.Rectangle().Point(Left, Bottom),
		}
		rect := root.Rectangle()
		f.page = Page{Number: i + 1, Width: rect.Width().ToMM(), Height: rect.Height().ToMM()}
		root.Walk(func(b *Box) bool {
			f.visit(b)
			return true
		})
		if pn := opts.PageNumbers; pn != nil {
			f.page.Number = pn.First + i
			f.pageNumber(*pn, i, len(pages), rect)
		}
		if f.err != nil {
			errs = multierr.Append(errs, fmt.Errorf("page %d: %w", i+1, f.err))
		}
		res.Pages = append(res.Pages, f.page)
	}
	if errs != nil {
		return nil, errs
	}
	return res, nil
}

type flattener struct {
	mode   RenderMode
	logger *log.Logger
	origin Point
	page   Page
	err    error
}

func (f *flattener) x(l Length) float64 { return l.Sub(f.origin.X).ToMM() }
func (f *flattener) y(l Length) float64 { return l.Sub(f.origin.Y).ToMM() }

func (f *flattener) rect(r Rectangle, stroke Color, width float64) Rect {
	return Rect{
		X:           f.x(r.Left),
		Y:           f.y(r.Bottom),
		Width:       r.Width().ToMM(),
		Height:      r.Height().ToMM(),
		StrokeColor: stroke,
		StrokeWidth: width,
	}
}

func (f *flattener) visit(b *Box) {
	f.checkOverflow(b)
	r := b.Rectangle()
	if f.mode == RenderDebug && b.Parent() != nil {
		c, ok := levelColors[b.Level()]
		if !ok {
			c = Red
		}
		f.page.Rects = append(f.page.Rects, f.rect(r, c, debugStrokeWidth))
	}

	switch b.Kind {
	case KindParent:
	case KindLeaf:
		f.leaf(b.Leaf, r)
	default:
		panic(fmt.Sprintf("unhandled box kind %v", b.Kind))
	}
}

func (f *flattener) leaf(l *Leaf, r Rectangle) {
	switch l.Kind {
	case LeafText:
		f.page.Texts = append(f.page.Texts, TextBox{
			Content:  l.Text,
			X:        f.x(r.Left),
			Y:        f.y(r.Bottom),
			Width:    r.Width().ToMM(),
			Height:   r.Height().ToMM(),
			Font:     l.Style.FontName(),
			FontSize: l.Style.FontSize().ToPT(),
		})
	case LeafDebug:
		center := r.Point(XCenter, YCenter)
		cx, cy := f.x(center.X), f.y(center.Y)
		w, h := r.Width().ToMM(), r.Height().ToMM()
		f.page.Circles = append(f.page.Circles, Circle{CX: cx, CY: cy, R: debugCircleR, StrokeColor: Red, StrokeWidth: debugStrokeWidth})
		f.page.Lines = append(f.page.Lines,
			Line{X1: cx - w, Y1: cy, X2: cx + w, Y2: cy, Width: 0.1},
			Line{X1: cx, Y1: cy - h, X2: cx, Y2: cy + h, Width: 0.1},
		)
		f.page.Texts = append(f.page.Texts, TextBox{
			Content:  strconv.Itoa(l.Label),
			X:        f.x(r.Left),
			Y:        f.y(r.Bottom),
			FontSize: debugLabelSize,
		})
	case LeafPlain:
		f.page.Rects = append(f.page.Rects, f.rect(r, Black, debugStrokeWidth))
	default:
		panic(fmt.Sprintf("unhandled leaf kind %v", l.Kind))
	}
}

func (f *flattener) checkOverflow(b *Box) {
	err := AssertInsideParent(b)
	if err == nil {
		return
	}
	switch f.mode {
	case RenderDebug:
		f.logger.Warn("box overflows its parent", "level", b.Level(), "overflow", OverflowOf(b).String())
		f.page.Rects = append(f.page.Rects, f.rect(b.Rectangle(), Red, 2*debugStrokeWidth))
	default:
		f.err = multierr.Append(f.err, err)
	}
}

func (f *flattener) pageNumber(pn PageNumbering, index, total int, page Rectangle) {
	text := binding.Interpolate(pn.Template, map[string]any{
		"page":  pn.First + index,
		"pages": pn.First + total - 1,
	})
	if text == "" {
		return
	}
	width := pn.Style.WidthOfText(text)
	left := page.Left.Add(pn.Margin)
	if isRightPage(pn.FirstPage, index) {
		left = page.Right.Sub(pn.Margin).Sub(width)
	}
	f.page.Texts = append(f.page.Texts, TextBox{
		Content:  text,
		X:        f.x(left),
		Y:        f.y(page.Bottom.Add(pn.Bottom)),
		Width:    width.ToMM(),
		Height:   pn.Style.LineHeight().ToMM(),
		Font:     pn.Style.FontName(),
		FontSize: pn.Style.FontSize().ToPT(),
	})
}
