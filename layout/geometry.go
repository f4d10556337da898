package layout

import "fmt"

// The y axis points up: a higher Y means further towards the page top.

// XPos is a horizontal anchor on a rectangle.
type XPos string

// YPos is a vertical anchor on a rectangle.
type YPos string

// Side names one of the four borders of a rectangle.
type Side string

const (
	Left    XPos = "left"
	XCenter XPos = "center"
	Right   XPos = "right"

	Top     YPos = "top"
	YCenter YPos = "center"
	Bottom  YPos = "bottom"

	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// PointOnRect is one of the nine anchors of a rectangle.
type PointOnRect struct {
	X XPos `json:"x"`
	Y YPos `json:"y"`
}

// ReferencePoint maps an anchor of a rectangle onto a point of the grid.
type ReferencePoint struct {
	OnRect PointOnRect `json:"pointOnRect"`
	OnGrid Point       `json:"pointOnGrid"`
}

// At is shorthand for building a ReferencePoint.
func At(x XPos, y YPos, p Point) ReferencePoint {
	return ReferencePoint{OnRect: PointOnRect{X: x, Y: y}, OnGrid: p}
}

// Dimensions is a width/height pair.
type Dimensions struct {
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

// Point is a position on the page grid.
type Point struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

func Origin() Point { return Point{} }

func (p Point) MoveRight(d Length) Point { return Point{X: p.X.Add(d), Y: p.Y} }
func (p Point) MoveLeft(d Length) Point  { return Point{X: p.X.Sub(d), Y: p.Y} }
func (p Point) MoveUp(d Length) Point    { return Point{X: p.X, Y: p.Y.Add(d)} }
func (p Point) MoveDown(d Length) Point  { return Point{X: p.X, Y: p.Y.Sub(d)} }

// AlignVerticalWith keeps x and takes the height of line.
func (p Point) AlignVerticalWith(line HLine) Point { return Point{X: p.X, Y: line.Y} }

// AlignHorizontalWith keeps y and takes the x of line.
func (p Point) AlignHorizontalWith(line VLine) Point { return Point{X: line.X, Y: p.Y} }

// Span returns the rectangle having p and q as opposite corners.
func (p Point) Span(q Point) Rectangle { return RectFromCorners(p, q) }

func (p Point) IsLeftOrEq(q Point) bool    { return p.X.Le(q.X) }
func (p Point) IsRightOrEq(q Point) bool   { return q.X.Le(p.X) }
func (p Point) IsLowerOrEq(q Point) bool   { return p.Y.Le(q.Y) }
func (p Point) IsHigherOrEq(q Point) bool  { return q.Y.Le(p.Y) }
func (p Point) Eq(q Point) bool            { return p.X.Eq(q.X) && p.Y.Eq(q.Y) }
func (p Point) String() string             { return fmt.Sprintf("(%s, %s)", p.X, p.Y) }
func (p Point) VLine() VLine               { return VLine{X: p.X} }
func (p Point) HLine() HLine               { return HLine{Y: p.Y} }
func (p Point) Translate(m Movement) Point { return m.Apply(p) }

// VLine is an infinite vertical line, used for left/right borders.
type VLine struct {
	X Length `json:"x"`
}

func (l VLine) MoveRight(d Length) VLine   { return VLine{X: l.X.Add(d)} }
func (l VLine) MoveLeft(d Length) VLine    { return VLine{X: l.X.Sub(d)} }
func (l VLine) IsLeftOrEq(o VLine) bool    { return l.X.Le(o.X) }
func (l VLine) IsRightOrEq(o VLine) bool   { return o.X.Le(l.X) }
func (l VLine) Distance(o VLine) Length    { return l.X.Sub(o.X).Abs() }
func (l VLine) Translate(m Movement) VLine { return VLine{X: l.X.Add(m.X)} }

// HLine is an infinite horizontal line, used for top/bottom borders.
type HLine struct {
	Y Length `json:"y"`
}

func (l HLine) MoveUp(d Length) HLine      { return HLine{Y: l.Y.Add(d)} }
func (l HLine) MoveDown(d Length) HLine    { return HLine{Y: l.Y.Sub(d)} }
func (l HLine) IsLowerOrEq(o HLine) bool   { return l.Y.Le(o.Y) }
func (l HLine) IsHigherOrEq(o HLine) bool  { return o.Y.Le(l.Y) }
func (l HLine) Distance(o HLine) Length    { return l.Y.Sub(o.Y).Abs() }
func (l HLine) Translate(m Movement) HLine { return HLine{Y: l.Y.Add(m.Y)} }

// Movement is a displacement applied uniformly to points, lines and rectangles.
type Movement struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

func MoveRightBy(d Length) Movement { return Movement{X: d} }
func MoveLeftBy(d Length) Movement  { return Movement{X: d.Neg()} }
func MoveUpBy(d Length) Movement    { return Movement{Y: d} }
func MoveDownBy(d Length) Movement  { return Movement{Y: d.Neg()} }

type movementStart struct{ from Point }

// MovementFrom starts a movement description; finish it with To.
func MovementFrom(p Point) movementStart { return movementStart{from: p} }

func (s movementStart) To(p Point) Movement {
	return Movement{X: p.X.Sub(s.from.X), Y: p.Y.Sub(s.from.Y)}
}

func (m Movement) Apply(p Point) Point     { return Point{X: p.X.Add(m.X), Y: p.Y.Add(m.Y)} }
func (m Movement) Add(o Movement) Movement { return Movement{X: m.X.Add(o.X), Y: m.Y.Add(o.Y)} }
func (m Movement) IsZero() bool            { return m.X.IsZero() && m.Y.IsZero() }
