package layout

// Limit selects the lower or upper restriction of a Bounds quantity.
type Limit int

const (
	Min Limit = iota
	Max
)

// BoundsSpec lists the explicitly known restrictions; nil means unknown.
type BoundsSpec struct {
	MinWidth, MaxWidth   *Length
	MinHeight, MaxHeight *Length
	MinLeft, MaxLeft     *VLine
	MinRight, MaxRight   *VLine
	MinTop, MaxTop       *HLine
	MinBottom, MaxBottom *HLine
}

// axis holds the restrictions along one axis. upper is right/top, lower is left/bottom.
type axis struct {
	value [2]*Length
	upper [2]*Length
	lower [2]*Length
}

func (a axis) getValue(l Limit) (Length, bool) {
	if v := a.value[l]; v != nil {
		return *v, true
	}
	if a.upper[l] != nil && a.lower[l] != nil {
		return a.upper[l].Sub(*a.lower[l]), true
	}
	return Zero, false
}

func (a axis) getUpper(l Limit) (Length, bool) {
	if v := a.upper[l]; v != nil {
		return *v, true
	}
	if a.lower[l] != nil && a.value[l] != nil {
		return a.lower[l].Add(*a.value[l]), true
	}
	return Zero, false
}

func (a axis) getLower(l Limit) (Length, bool) {
	if v := a.lower[l]; v != nil {
		return *v, true
	}
	if a.upper[l] != nil && a.value[l] != nil {
		return a.upper[l].Sub(*a.value[l]), true
	}
	return Zero, false
}

func (a axis) translate(d Length) axis {
	move := func(p *Length) *Length {
		if p == nil {
			return nil
		}
		v := p.Add(d)
		return &v
	}
	res := a
	for _, l := range []Limit{Min, Max} {
		res.upper[l] = move(a.upper[l])
		res.lower[l] = move(a.lower[l])
	}
	return res
}

// Bounds is a partially specified rectangle: each of {min,max}×{width,height,
// left,right,top,bottom} may be known or not, and missing ones are derived
// from the others where possible.
type Bounds struct {
	horizontal axis
	vertical   axis
}

func NewBounds(s BoundsSpec) Bounds {
	x := func(l *VLine) *Length {
		if l == nil {
			return nil
		}
		v := l.X
		return &v
	}
	y := func(l *HLine) *Length {
		if l == nil {
			return nil
		}
		v := l.Y
		return &v
	}
	return Bounds{
		horizontal: axis{
			value: [2]*Length{s.MinWidth, s.MaxWidth},
			upper: [2]*Length{x(s.MinRight), x(s.MaxRight)},
			lower: [2]*Length{x(s.MinLeft), x(s.MaxLeft)},
		},
		vertical: axis{
			value: [2]*Length{s.MinHeight, s.MaxHeight},
			upper: [2]*Length{y(s.MinTop), y(s.MaxTop)},
			lower: [2]*Length{y(s.MinBottom), y(s.MaxBottom)},
		},
	}
}

// Unbound returns bounds without any restriction.
func Unbound() Bounds { return Bounds{} }

// ExactBoundsFrom pins every border to the rectangle.
func ExactBoundsFrom(r Rectangle) Bounds {
	left, right := r.VBorder(Left), r.VBorder(Right)
	top, bottom := r.HBorder(Top), r.HBorder(Bottom)
	return NewBounds(BoundsSpec{
		MinLeft: &left, MaxLeft: &left,
		MinRight: &right, MaxRight: &right,
		MinTop: &top, MaxTop: &top,
		MinBottom: &bottom, MaxBottom: &bottom,
	})
}

// MinBoundsFrom requires a box to cover at least the rectangle.
func MinBoundsFrom(r Rectangle) Bounds {
	left, right := r.VBorder(Left), r.VBorder(Right)
	top, bottom := r.HBorder(Top), r.HBorder(Bottom)
	return NewBounds(BoundsSpec{MinLeft: &left, MinRight: &right, MinTop: &top, MinBottom: &bottom})
}

// Move translates every border restriction; width and height stay.
func (b Bounds) Move(m Movement) Bounds {
	return Bounds{horizontal: b.horizontal.translate(m.X), vertical: b.vertical.translate(m.Y)}
}

func (b Bounds) Width(l Limit) (Length, bool)  { return b.horizontal.getValue(l) }
func (b Bounds) Height(l Limit) (Length, bool) { return b.vertical.getValue(l) }

func (b Bounds) Left(l Limit) (VLine, bool) {
	v, ok := b.horizontal.getLower(l)
	return VLine{X: v}, ok
}

func (b Bounds) Right(l Limit) (VLine, bool) {
	v, ok := b.horizontal.getUpper(l)
	return VLine{X: v}, ok
}

func (b Bounds) Top(l Limit) (HLine, bool) {
	v, ok := b.vertical.getUpper(l)
	return HLine{Y: v}, ok
}

func (b Bounds) Bottom(l Limit) (HLine, bool) {
	v, ok := b.vertical.getLower(l)
	return HLine{Y: v}, ok
}

// PartialRectangle is a rectangle whose borders may be unknown (nil).
type PartialRectangle struct {
	Left, Right *VLine
	Top, Bottom *HLine
}

// PartialFromBounds collects the borders derivable for the given limit.
func PartialFromBounds(b Bounds, l Limit) PartialRectangle {
	var p PartialRectangle
	if v, ok := b.Left(l); ok {
		p.Left = &v
	}
	if v, ok := b.Right(l); ok {
		p.Right = &v
	}
	if v, ok := b.Top(l); ok {
		p.Top = &v
	}
	if v, ok := b.Bottom(l); ok {
		p.Bottom = &v
	}
	return p
}

// PartialFromRect turns a resolved rectangle into a partial one.
func PartialFromRect(r Rectangle) PartialRectangle {
	left, right := r.VBorder(Left), r.VBorder(Right)
	top, bottom := r.HBorder(Top), r.HBorder(Bottom)
	return PartialRectangle{Left: &left, Right: &right, Top: &top, Bottom: &bottom}
}

// Full resolves missing borders from the opposite one, falling back to zero.
func (p PartialRectangle) Full() Rectangle {
	left, right := VLine{}, VLine{}
	switch {
	case p.Left != nil && p.Right != nil:
		left, right = *p.Left, *p.Right
	case p.Left != nil:
		left, right = *p.Left, *p.Left
	case p.Right != nil:
		left, right = *p.Right, *p.Right
	}
	top, bottom := HLine{}, HLine{}
	switch {
	case p.Top != nil && p.Bottom != nil:
		top, bottom = *p.Top, *p.Bottom
	case p.Top != nil:
		top, bottom = *p.Top, *p.Top
	case p.Bottom != nil:
		top, bottom = *p.Bottom, *p.Bottom
	}
	return RectFromBorders(left, top, right, bottom)
}

// fill takes missing borders from r.
func (p PartialRectangle) fill(r Rectangle) Rectangle {
	res := r
	if p.Left != nil {
		res.Left = p.Left.X
	}
	if p.Right != nil {
		res.Right = p.Right.X
	}
	if p.Top != nil {
		res.Top = p.Top.Y
	}
	if p.Bottom != nil {
		res.Bottom = p.Bottom.Y
	}
	return res
}
