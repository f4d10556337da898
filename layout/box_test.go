package layout

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// monoStyle 是测试用的等宽字体：每个字符宽 char，行高 height。
type monoStyle struct {
	char, height Length
}

func (m monoStyle) WidthOfText(s string) Length {
	return m.char.Mul(float64(utf8.RuneCountInString(s)))
}
func (m monoStyle) LineHeight() Length { return m.height }
func (m monoStyle) FontName() string   { return "mono" }
func (m monoStyle) FontSize() Length   { return PT(10) }

var mono10 = monoStyle{char: MM(10), height: MM(5)}

func pt(x, y float64) Point { return Point{X: MM(x), Y: MM(y)} }

func TestFitIntoBoundsMinThenMax(t *testing.T) {
	r := RectFromBorders(VLine{X: MM(-100)}, HLine{Y: MM(300)}, VLine{X: MM(200)}, HLine{Y: MM(-400)})
	maxLeft := VLine{X: MM(10)}
	minRight := VLine{X: MM(2000)}
	got := FitIntoBounds(r, NewBounds(BoundsSpec{MaxLeft: &maxLeft, MinRight: &minRight}))
	want := RectFromBorders(VLine{X: MM(10)}, HLine{Y: MM(300)}, VLine{X: MM(2000)}, HLine{Y: MM(-400)})
	if !got.Eq(want) {
		t.Fatalf("FitIntoBounds = %s, want %s", got, want)
	}
}

func TestMinBoundsFromDerivesDimensions(t *testing.T) {
	b := MinBoundsFrom(pt(0, 0).Span(pt(60, 50)))
	if w, ok := b.Width(Min); !ok || !w.Eq(MM(60)) {
		t.Fatalf("min width = %s (%v), want 60mm", w, ok)
	}
	if h, ok := b.Height(Min); !ok || !h.Eq(MM(50)) {
		t.Fatalf("min height = %s (%v), want 50mm", h, ok)
	}
	if _, ok := b.Width(Max); ok {
		t.Fatalf("max width should be undefined")
	}
	if _, ok := b.Height(Max); ok {
		t.Fatalf("max height should be undefined")
	}
	if _, ok := b.Left(Max); ok {
		t.Fatalf("max left should be undefined")
	}
}

func TestBoundsDeriveBorderFromValue(t *testing.T) {
	left := VLine{X: MM(5)}
	width := MM(20)
	b := NewBounds(BoundsSpec{MaxLeft: &left, MaxWidth: &width})
	right, ok := b.Right(Max)
	if !ok || !right.X.Eq(MM(25)) {
		t.Fatalf("max right = %s (%v), want 25mm", right.X, ok)
	}
	moved := b.Move(MoveRightBy(MM(3)))
	if right, _ := moved.Right(Max); !right.X.Eq(MM(28)) {
		t.Fatalf("moved max right = %s, want 28mm", right.X)
	}
	if w, _ := moved.Width(Max); !w.Eq(width) {
		t.Fatalf("moving changed the width to %s", w)
	}
}

func TestMinimalBoundingRectangle(t *testing.T) {
	if _, ok := MinimalBoundingRectangle(nil); ok {
		t.Fatalf("expected no rectangle for an empty list")
	}
	r := pt(1, 2).Span(pt(3, 7))
	if got, ok := MinimalBoundingRectangle([]Rectangle{r}); !ok || !got.Eq(r) {
		t.Fatalf("single rect MBR = %s, want %s", got, r)
	}
	got, _ := MinimalBoundingRectangle([]Rectangle{r, pt(-4, 0).Span(pt(2, 3))})
	if want := pt(-4, 0).Span(pt(3, 7)); !got.Eq(want) {
		t.Fatalf("MBR = %s, want %s", got, want)
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	r := pt(-3, 11).Span(pt(17, 42))
	for _, x := range []XPos{Left, XCenter, Right} {
		for _, y := range []YPos{Top, YCenter, Bottom} {
			got := RectFromPlacement(At(x, y, r.Point(x, y)), r.Dims())
			if !got.Eq(r) {
				t.Fatalf("round trip via (%s, %s) = %s, want %s", x, y, got, r)
			}
		}
	}
}

func TestRightToLeftAnchorMovesByWidth(t *testing.T) {
	r := pt(10, 0).Span(pt(30, 5))
	r.SetPosition(At(Right, Bottom, pt(100, 0)))
	if !r.Left.Eq(MM(80)) || !r.Right.Eq(MM(100)) {
		t.Fatalf("rect after right anchoring = %s", r)
	}
}

func TestInvalidAnchorPanics(t *testing.T) {
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrInvalidPlacement) {
			t.Fatalf("expected ErrInvalidPlacement panic, got %v", rec)
		}
	}()
	pt(0, 0).Span(pt(1, 1)).Point("middle", Top)
}

func TestParentSetPositionTranslatesSubtree(t *testing.T) {
	a := NewTextBox("ab", mono10)
	b := NewTextBox("abcd", mono10)
	b.SetPosition(At(Left, Top, pt(5, -10)))
	inner := NewArrangement(Unbound(), b)
	parent := NewArrangement(Unbound(), a, inner)

	before := parent.Rectangle()
	offsetA := MovementFrom(before.Point(Left, Top)).To(a.Rectangle().Point(Left, Top))
	offsetB := MovementFrom(before.Point(Left, Top)).To(b.Rectangle().Point(Left, Top))

	parent.SetPosition(At(Left, Top, pt(100, 200)))

	after := parent.Rectangle()
	if !after.Point(Left, Top).Eq(pt(100, 200)) {
		t.Fatalf("parent left-top = %s", after.Point(Left, Top))
	}
	if !after.Dims().Width.Eq(before.Width()) || !after.Height().Eq(before.Height()) {
		t.Fatalf("parent size changed from %s to %s", before, after)
	}
	if got := offsetA.Apply(after.Point(Left, Top)); !got.Eq(a.Rectangle().Point(Left, Top)) {
		t.Fatalf("child a at %s, want %s", a.Rectangle().Point(Left, Top), got)
	}
	if got := offsetB.Apply(after.Point(Left, Top)); !got.Eq(b.Rectangle().Point(Left, Top)) {
		t.Fatalf("grandchild b at %s, want %s", b.Rectangle().Point(Left, Top), got)
	}
}

func TestEmptyParentUsesMinBounds(t *testing.T) {
	left, top := VLine{X: MM(4)}, HLine{Y: MM(9)}
	box := NewArrangement(NewBounds(BoundsSpec{MinLeft: &left, MinTop: &top}))
	want := RectFromBorders(left, top, left, top)
	if got := box.Rectangle(); !got.Eq(want) {
		t.Fatalf("empty parent rect = %s, want %s", got, want)
	}
}

func TestLevelAndRoot(t *testing.T) {
	leaf := NewTextBox("x", mono10)
	mid := NewArrangement(Unbound(), leaf)
	root := NewArrangement(Unbound(), mid)
	if leaf.Level() != 2 || mid.Level() != 1 || root.Level() != 0 {
		t.Fatalf("levels = %d/%d/%d", leaf.Level(), mid.Level(), root.Level())
	}
	if leaf.Root() != root {
		t.Fatalf("Root() did not reach the top")
	}
}

func TestAppendChildOnLeafPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	NewTextBox("x", mono10).AppendChild(NewTextBox("y", mono10))
}

func TestPartialWidths(t *testing.T) {
	widths := NewTextBox("abc", mono10).PartialWidths()
	if len(widths) != 3 {
		t.Fatalf("len = %d", len(widths))
	}
	for i, w := range widths {
		if !w.Eq(MM(float64(10 * i))) {
			t.Fatalf("width[%d] = %s", i, w)
		}
	}
}

func TestOverflow(t *testing.T) {
	page := ArrangementFromRect(pt(0, 0).Span(pt(100, 100)))
	inside := NewTextBox("abc", mono10)
	inside.SetPosition(At(Left, Bottom, pt(10, 10)))
	page.AppendChild(inside)
	if HasOverflow(page) {
		t.Fatalf("unexpected overflow for a box inside its page")
	}
	if !IsInside(inside.Rectangle(), page.Rectangle()) {
		t.Fatalf("child is not inside its parent")
	}

	outside := NewTextBox("abc", mono10)
	outside.SetPosition(At(Left, Bottom, pt(90, 10)))
	page.AppendChild(outside)
	if !HasOverflow(page) {
		t.Fatalf("expected an overflow")
	}
	o := OverflowOf(outside)
	if !o.Right.Eq(MM(20)) || !o.Left.IsZero() {
		t.Fatalf("overflow = %+v", o)
	}
	if s := o.String(); !strings.HasPrefix(s, "BoxOverflow at: right 20mm") {
		t.Fatalf("overflow string = %q", s)
	}
	err := AssertInsideParent(outside)
	var oe *OverflowError
	if !errors.As(err, &oe) || oe.Level != 1 || !errors.Is(err, ErrOverflow) {
		t.Fatalf("AssertInsideParent = %v", err)
	}
}

func TestOverflowBelowToleranceIsIgnored(t *testing.T) {
	page := ArrangementFromRect(pt(0, 0).Span(pt(100, 100)))
	child := NewPlainBox(pt(0, 0).Span(pt(10, 10)))
	child.SetPosition(At(Left, Bottom, Point{X: PT(-0.5), Y: Zero}))
	page.AppendChild(child)
	if HasOverflow(page) {
		t.Fatalf("half a point should be tolerated")
	}
	child.SetPosition(At(Left, Bottom, Point{X: PT(-1.5), Y: Zero}))
	if !HasOverflow(page) {
		t.Fatalf("one and a half points must count as overflow")
	}
}
