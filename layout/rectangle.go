package layout

import "fmt"

// Rectangle has four resolved borders. Invariant: Right >= Left and Top >= Bottom.
type Rectangle struct {
	Left   Length `json:"left"`
	Right  Length `json:"right"`
	Top    Length `json:"top"`
	Bottom Length `json:"bottom"`
}

// RectFromCorners builds the rectangle spanned by two opposite corners, in any order.
func RectFromCorners(p, q Point) Rectangle {
	return Rectangle{
		Left:   MinLength(p.X, q.X),
		Right:  MaxLength(p.X, q.X),
		Top:    MaxLength(p.Y, q.Y),
		Bottom: MinLength(p.Y, q.Y),
	}
}

// RectFromBorders builds a rectangle from its borders and normalizes swapped ones.
func RectFromBorders(left VLine, top HLine, right VLine, bottom HLine) Rectangle {
	return RectFromCorners(Point{X: left.X, Y: top.Y}, Point{X: right.X, Y: bottom.Y})
}

// RectFromPlacement places a rectangle of the given dimensions so that its
// anchor ref.OnRect lies on ref.OnGrid.
func RectFromPlacement(ref ReferencePoint, dims Dimensions) Rectangle {
	leftTop := movePoint(ref.OnGrid, ref.OnRect, PointOnRect{X: Left, Y: Top}, dims)
	rightBottom := leftTop.MoveRight(dims.Width).MoveDown(dims.Height)
	return RectFromCorners(leftTop, rightBottom)
}

func (r Rectangle) Width() Length  { return r.Right.Sub(r.Left) }
func (r Rectangle) Height() Length { return r.Top.Sub(r.Bottom) }
func (r Rectangle) Dims() Dimensions {
	return Dimensions{Width: r.Width(), Height: r.Height()}
}

func (r Rectangle) XCenter() Length { return r.Left.Add(r.Width().Mul(0.5)) }
func (r Rectangle) YCenter() Length { return r.Bottom.Add(r.Height().Mul(0.5)) }

// Point returns the anchor (x, y) of the rectangle.
func (r Rectangle) Point(x XPos, y YPos) Point {
	return movePoint(Point{X: r.Left, Y: r.Top}, PointOnRect{X: Left, Y: Top}, PointOnRect{X: x, Y: y}, r.Dims())
}

func (r Rectangle) PointAt(p PointOnRect) Point { return r.Point(p.X, p.Y) }

// Border returns the coordinate of a side: x for left/right, y for top/bottom.
func (r Rectangle) Border(s Side) Length {
	switch s {
	case SideLeft:
		return r.Left
	case SideRight:
		return r.Right
	case SideTop:
		return r.Top
	case SideBottom:
		return r.Bottom
	}
	panic(fmt.Errorf("%w: side %q", ErrInvalidPlacement, s))
}

// VBorder returns the left or right border line.
func (r Rectangle) VBorder(x XPos) VLine {
	switch x {
	case Left:
		return VLine{X: r.Left}
	case Right:
		return VLine{X: r.Right}
	case XCenter:
		return VLine{X: r.XCenter()}
	}
	panic(fmt.Errorf("%w: x=%q", ErrInvalidPlacement, x))
}

// HBorder returns the top or bottom border line.
func (r Rectangle) HBorder(y YPos) HLine {
	switch y {
	case Top:
		return HLine{Y: r.Top}
	case Bottom:
		return HLine{Y: r.Bottom}
	case YCenter:
		return HLine{Y: r.YCenter()}
	}
	panic(fmt.Errorf("%w: y=%q", ErrInvalidPlacement, y))
}

// ReferencePoint describes the current placement by its left-top corner.
func (r Rectangle) ReferencePoint() ReferencePoint {
	return At(Left, Top, r.Point(Left, Top))
}

// SetPosition re-anchors the rectangle while preserving width and height.
func (r *Rectangle) SetPosition(ref ReferencePoint) {
	*r = RectFromPlacement(ref, r.Dims())
}

// Translate moves all borders by m.
func (r Rectangle) Translate(m Movement) Rectangle {
	return Rectangle{
		Left:   r.Left.Add(m.X),
		Right:  r.Right.Add(m.X),
		Top:    r.Top.Add(m.Y),
		Bottom: r.Bottom.Add(m.Y),
	}
}

func (r Rectangle) Eq(o Rectangle) bool {
	return r.Left.Eq(o.Left) && r.Right.Eq(o.Right) && r.Top.Eq(o.Top) && r.Bottom.Eq(o.Bottom)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[left %s, top %s, right %s, bottom %s]", r.Left, r.Top, r.Right, r.Bottom)
}

// movePoint moves p, known to be the anchor `from` of a rectangle with dims,
// to the anchor `to` of the same rectangle.
func movePoint(p Point, from, to PointOnRect, dims Dimensions) Point {
	return moveY(moveX(p, from.X, to.X, dims.Width), from.Y, to.Y, dims.Height)
}

func xOffset(x XPos) float64 {
	switch x {
	case Left:
		return 0
	case XCenter:
		return 0.5
	case Right:
		return 1
	}
	panic(fmt.Errorf("%w: x=%q", ErrInvalidPlacement, x))
}

func yOffset(y YPos) float64 {
	switch y {
	case Bottom:
		return 0
	case YCenter:
		return 0.5
	case Top:
		return 1
	}
	panic(fmt.Errorf("%w: y=%q", ErrInvalidPlacement, y))
}

func moveX(p Point, from, to XPos, width Length) Point {
	d := xOffset(to) - xOffset(from)
	if d == 0 {
		return p
	}
	return p.MoveRight(width.Mul(d))
}

func moveY(p Point, from, to YPos, height Length) Point {
	d := yOffset(to) - yOffset(from)
	if d == 0 {
		return p
	}
	return p.MoveUp(height.Mul(d))
}
