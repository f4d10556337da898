package layout

import "strings"

// overflowTolerance is the excess below which a side does not count as overflowing.
var overflowTolerance = PT(1)

// Overflows is the per-side excess of a box over its parent.
type Overflows struct {
	Left   Length `json:"left"`
	Right  Length `json:"right"`
	Top    Length `json:"top"`
	Bottom Length `json:"bottom"`
}

// OverflowOf compares b with its parent; a root never overflows.
func OverflowOf(b *Box) Overflows {
	if b.parent == nil {
		return Overflows{}
	}
	return overflowBetween(b.Rectangle(), b.parent.Rectangle())
}

func overflowBetween(child, parent Rectangle) Overflows {
	return Overflows{
		Left:   parent.Left.Sub(child.Left).AtLeastZero(),
		Right:  child.Right.Sub(parent.Right).AtLeastZero(),
		Top:    child.Top.Sub(parent.Top).AtLeastZero(),
		Bottom: parent.Bottom.Sub(child.Bottom).AtLeastZero(),
	}
}

func (o Overflows) IsEmpty() bool {
	return o.Top.Lt(overflowTolerance) &&
		o.Bottom.Lt(overflowTolerance) &&
		o.Left.Lt(overflowTolerance) &&
		o.Right.Lt(overflowTolerance)
}

func (o Overflows) String() string {
	var parts []string
	add := func(name string, l Length) {
		if l.Gtz() {
			parts = append(parts, name+" "+MM(l.ToMM()).String())
		}
	}
	add("bottom", o.Bottom)
	add("top", o.Top)
	add("left", o.Left)
	add("right", o.Right)
	return "BoxOverflow at: " + strings.Join(parts, ", ") + "."
}

// HasOverflow reports whether any descendant of b sticks out of its parent.
func HasOverflow(b *Box) bool {
	found := false
	b.Walk(func(n *Box) bool {
		if found {
			return false
		}
		if !OverflowOf(n).IsEmpty() {
			found = true
		}
		return !found
	})
	return found
}

// AssertInsideParent returns an *OverflowError if b overflows its parent.
func AssertInsideParent(b *Box) error {
	o := OverflowOf(b)
	if o.IsEmpty() {
		return nil
	}
	return &OverflowError{Level: b.Level(), Overflows: o}
}
