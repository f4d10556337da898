package layout

// MinimalBoundingRectangle returns the smallest rectangle containing all
// rects; ok is false for an empty list.
func MinimalBoundingRectangle(rects []Rectangle) (Rectangle, bool) {
	if len(rects) == 0 {
		return Rectangle{}, false
	}
	res := rects[0]
	for _, r := range rects[1:] {
		res.Left = MinLength(res.Left, r.Left)
		res.Right = MaxLength(res.Right, r.Right)
		res.Top = MaxLength(res.Top, r.Top)
		res.Bottom = MinLength(res.Bottom, r.Bottom)
	}
	return res, true
}

// BoundingUnion extends start by every known border of the partials.
func BoundingUnion(start PartialRectangle, partials ...PartialRectangle) PartialRectangle {
	res := start
	for _, p := range partials {
		if p.Left != nil && (res.Left == nil || p.Left.IsLeftOrEq(*res.Left)) {
			res.Left = p.Left
		}
		if p.Right != nil && (res.Right == nil || p.Right.IsRightOrEq(*res.Right)) {
			res.Right = p.Right
		}
		if p.Top != nil && (res.Top == nil || p.Top.IsHigherOrEq(*res.Top)) {
			res.Top = p.Top
		}
		if p.Bottom != nil && (res.Bottom == nil || p.Bottom.IsLowerOrEq(*res.Bottom)) {
			res.Bottom = p.Bottom
		}
	}
	return res
}

// Intersection shrinks r by every known border of the partials.
func Intersection(r Rectangle, partials ...PartialRectangle) Rectangle {
	res := r
	for _, p := range partials {
		if p.Left != nil && p.Left.X.Ge(res.Left) {
			res.Left = p.Left.X
		}
		if p.Right != nil && p.Right.X.Le(res.Right) {
			res.Right = p.Right.X
		}
		if p.Top != nil && p.Top.Y.Le(res.Top) {
			res.Top = p.Top.Y
		}
		if p.Bottom != nil && p.Bottom.Y.Ge(res.Bottom) {
			res.Bottom = p.Bottom.Y
		}
	}
	return RectFromBorders(VLine{X: res.Left}, HLine{Y: res.Top}, VLine{X: res.Right}, HLine{Y: res.Bottom})
}

// FitIntoBounds first extends r to the min bounds, then clips the result to the max bounds.
func FitIntoBounds(r Rectangle, b Bounds) Rectangle {
	lower := PartialFromBounds(b, Min)
	upper := PartialFromBounds(b, Max)
	extended := BoundingUnion(lower, PartialFromRect(r)).fill(r)
	return Intersection(extended, upper)
}

// IsInside reports whether inner is enclosed by outer within Epsilon.
func IsInside(inner, outer Rectangle) bool {
	return inner.Left.Ge(outer.Left) &&
		inner.Right.Le(outer.Right) &&
		inner.Top.Le(outer.Top) &&
		inner.Bottom.Ge(outer.Bottom)
}
