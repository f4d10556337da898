package layout

import "fmt"

// RectangleGenerator hands out the writable rectangle of successive pages.
// Get is pure; Next advances an internal counter. Clone copies that counter,
// so a speculative layout can consume pages without affecting the original.
type RectangleGenerator interface {
	Get(index int) Rectangle
	Next() Rectangle
	// Consumed is the number of rectangles handed out by Next so far.
	Consumed() int
	Clone() RectangleGenerator
}

// SimpleGenerator returns First for the first page and Regular afterwards.
type SimpleGenerator struct {
	First   Rectangle
	Regular Rectangle
	next    int
}

// NewSimpleGenerator uses regular for every page, starting the first page at
// begin when begin is not nil.
func NewSimpleGenerator(regular Rectangle, begin *HLine) *SimpleGenerator {
	first := regular
	if begin != nil {
		first = regular.Point(Left, Top).AlignVerticalWith(*begin).Span(regular.Point(Right, Bottom))
	}
	return &SimpleGenerator{First: first, Regular: regular}
}

func (g *SimpleGenerator) Get(index int) Rectangle {
	if index == 0 {
		return g.First
	}
	return g.Regular
}

func (g *SimpleGenerator) Next() Rectangle {
	r := g.Get(g.next)
	g.next++
	return r
}

func (g *SimpleGenerator) Consumed() int { return g.next }

func (g *SimpleGenerator) Clone() RectangleGenerator {
	c := *g
	return &c
}

// PageSide is the side of a spread a page ends up on when bound as a book.
type PageSide string

const (
	PageLeft  PageSide = "left"
	PageRight PageSide = "right"
)

// ParsePageSide accepts "left" and "right".
func ParsePageSide(s string) (PageSide, error) {
	switch PageSide(s) {
	case PageLeft, PageRight:
		return PageSide(s), nil
	}
	return "", fmt.Errorf("invalid page side %q: want left or right", s)
}

// BookPageGenerator yields margin-inset rectangles for double-sided printing.
// The inner margin lies on the binding side: left on right pages, right on
// left pages.
type BookPageGenerator struct {
	Width, Height Length
	Top, Bottom   Length
	Inner, Outer  Length
	FirstPage     PageSide

	next int
}

// IsRightPage reports whether the page with the given index is a right page.
func (g *BookPageGenerator) IsRightPage(index int) bool { return isRightPage(g.FirstPage, index) }

func isRightPage(first PageSide, index int) bool {
	even := index%2 == 0
	if first == PageLeft {
		return !even
	}
	return even
}

func (g *BookPageGenerator) Get(index int) Rectangle {
	leftMargin, rightMargin := g.Outer, g.Inner
	if g.IsRightPage(index) {
		leftMargin, rightMargin = g.Inner, g.Outer
	}
	return RectFromBorders(
		VLine{X: leftMargin},
		HLine{Y: g.Height.Sub(g.Top)},
		VLine{X: g.Width.Sub(rightMargin)},
		HLine{Y: g.Bottom},
	)
}

func (g *BookPageGenerator) Next() Rectangle {
	r := g.Get(g.next)
	g.next++
	return r
}

func (g *BookPageGenerator) Consumed() int { return g.next }

func (g *BookPageGenerator) Clone() RectangleGenerator {
	c := *g
	return &c
}
