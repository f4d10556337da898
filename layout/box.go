package layout

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// TextStyle measures text for one font at one size.
type TextStyle interface {
	WidthOfText(text string) Length
	LineHeight() Length
	FontName() string
	FontSize() Length
}

// Kind tags a Box as leaf or parent.
type Kind int

const (
	KindLeaf Kind = iota
	KindParent
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindParent:
		return "parent"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// LeafKind tags the payload of a leaf box.
type LeafKind int

const (
	LeafText  LeafKind = iota // a single run of text in one style
	LeafDebug                 // a labeled 3mm marker
	LeafPlain                 // an empty rectangle of fixed size
)

func (k LeafKind) String() string {
	switch k {
	case LeafText:
		return "text"
	case LeafDebug:
		return "debug"
	case LeafPlain:
		return "plain"
	}
	return "LeafKind(" + strconv.Itoa(int(k)) + ")"
}

// DebugBoxSize is the side length of a debug marker.
var DebugBoxSize = MM(3)

var debugBoxCounter atomic.Int64

// Leaf is the payload of a leaf box. Its dimensions are intrinsic and fixed
// at construction; only the placement changes.
type Leaf struct {
	Kind  LeafKind
	Text  string
	Style TextStyle
	// Label is the construction number of a debug box.
	Label int

	dims Dimensions
	pos  ReferencePoint
}

// Box is a node of the layout tree. Leaves have intrinsic size; a parent
// derives its rectangle from its children, fitted into its bounds.
type Box struct {
	Kind Kind
	Leaf *Leaf

	children []*Box
	bounds   Bounds
	parent   *Box
}

func newLeaf(l *Leaf) *Box {
	l.dims = leafDims(l)
	return &Box{Kind: KindLeaf, Leaf: l}
}

func leafDims(l *Leaf) Dimensions {
	switch l.Kind {
	case LeafText:
		return Dimensions{Width: l.Style.WidthOfText(l.Text), Height: l.Style.LineHeight()}
	case LeafDebug:
		return Dimensions{Width: DebugBoxSize, Height: DebugBoxSize}
	case LeafPlain:
		return l.dims
	}
	panic(fmt.Sprintf("unhandled leaf kind %v", l.Kind))
}

// NewTextBox creates a text leaf anchored at the origin by its left-bottom corner.
func NewTextBox(text string, style TextStyle) *Box {
	return newLeaf(&Leaf{Kind: LeafText, Text: text, Style: style, pos: At(Left, Bottom, Origin())})
}

// NewDebugBox creates a debug marker centered on p.
func NewDebugBox(p Point) *Box {
	n := debugBoxCounter.Add(1) - 1
	return newLeaf(&Leaf{Kind: LeafDebug, Label: int(n), pos: At(XCenter, YCenter, p)})
}

// NewPlainBox creates an empty leaf covering r.
func NewPlainBox(r Rectangle) *Box {
	return newLeaf(&Leaf{Kind: LeafPlain, dims: r.Dims(), pos: r.ReferencePoint()})
}

// NewArrangement creates a parent box restricted by bounds.
func NewArrangement(bounds Bounds, children ...*Box) *Box {
	b := &Box{Kind: KindParent, bounds: bounds}
	for _, c := range children {
		b.AppendChild(c)
	}
	return b
}

// ArrangementFromRect creates a parent box pinned to r.
func ArrangementFromRect(r Rectangle) *Box { return NewArrangement(ExactBoundsFrom(r)) }

// NewPage creates a root box covering a page of the given size, with its
// left-bottom corner at the origin.
func NewPage(dims Dimensions) *Box {
	return ArrangementFromRect(RectFromPlacement(At(Left, Bottom, Origin()), dims))
}

// Rectangle returns the current rectangle of the box.
func (b *Box) Rectangle() Rectangle {
	switch b.Kind {
	case KindLeaf:
		return RectFromPlacement(b.Leaf.pos, b.Leaf.dims)
	case KindParent:
		mbr, ok := MinimalBoundingRectangle(b.childRects())
		if !ok {
			return PartialFromBounds(b.bounds, Min).Full()
		}
		return FitIntoBounds(mbr, b.bounds)
	}
	panic(fmt.Sprintf("unhandled box kind %v", b.Kind))
}

func (b *Box) childRects() []Rectangle {
	rects := make([]Rectangle, 0, len(b.children))
	for _, c := range b.children {
		rects = append(rects, c.Rectangle())
	}
	return rects
}

// SetPosition moves the box so that ref.OnRect lies on ref.OnGrid. A parent
// translates all descendants by the same vector.
func (b *Box) SetPosition(ref ReferencePoint) {
	switch b.Kind {
	case KindLeaf:
		b.Leaf.pos = ref
	case KindParent:
		rect := b.Rectangle()
		oldCenter := rect.Point(XCenter, YCenter)
		rect.SetPosition(ref)
		b.Translate(MovementFrom(oldCenter).To(rect.Point(XCenter, YCenter)))
	default:
		panic(fmt.Sprintf("unhandled box kind %v", b.Kind))
	}
}

// Translate moves the box and its whole subtree by m.
func (b *Box) Translate(m Movement) {
	switch b.Kind {
	case KindLeaf:
		b.Leaf.pos.OnGrid = m.Apply(b.Leaf.pos.OnGrid)
	case KindParent:
		b.bounds = b.bounds.Move(m)
		for _, c := range b.children {
			c.Translate(m)
		}
	default:
		panic(fmt.Sprintf("unhandled box kind %v", b.Kind))
	}
}

// AppendChild adds c as the last child. Appending to a leaf is a programming error.
func (b *Box) AppendChild(c *Box) {
	if b.Kind != KindParent {
		panic("AppendChild on a leaf box")
	}
	b.children = append(b.children, c)
	c.parent = b
}

func (b *Box) Children() []*Box { return b.children }
func (b *Box) Parent() *Box     { return b.parent }
func (b *Box) Bounds() Bounds   { return b.bounds }

// Level is 0 for the root and one more than the parent's level otherwise.
func (b *Box) Level() int {
	if b.parent == nil {
		return 0
	}
	return b.parent.Level() + 1
}

func (b *Box) Root() *Box {
	if b.parent == nil {
		return b
	}
	return b.parent.Root()
}

// Walk visits b and all descendants depth first; returning false skips the subtree.
func (b *Box) Walk(fn func(*Box) bool) {
	if !fn(b) {
		return
	}
	for _, c := range b.children {
		c.Walk(fn)
	}
}

// PartialWidths returns, for every rune index i of a text leaf, the width of
// the text before i.
func (b *Box) PartialWidths() []Length {
	if b.Kind != KindLeaf || b.Leaf.Kind != LeafText {
		return nil
	}
	return PartialWidths(b.Leaf.Text, b.Leaf.Style)
}

// PartialWidths measures every prefix text[:i] for i in [0, len(runes)).
func PartialWidths(text string, style TextStyle) []Length {
	rs := []rune(text)
	res := make([]Length, len(rs))
	for i := range rs {
		res[i] = style.WidthOfText(string(rs[:i]))
	}
	return res
}
