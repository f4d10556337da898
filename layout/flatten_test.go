package layout

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func pageWith(children ...*Box) *Box {
	page := NewPage(Dimensions{Width: MM(100), Height: MM(100)})
	for _, c := range children {
		page.AppendChild(c)
	}
	return page
}

func TestFlattenEmitsTextAtLeftBottom(t *testing.T) {
	text := NewTextBox("hey", mono10)
	text.SetPosition(At(Left, Top, pt(10, 50)))
	res, err := Flatten([]*Box{pageWith(text)}, FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	want := []TextBox{{Content: "hey", X: 10, Y: 45, Width: 30, Height: 5, Font: "mono", FontSize: 10}}
	if diff := cmp.Diff(want, res.Pages[0].Texts, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	if len(res.Pages[0].Rects) != 0 {
		t.Fatalf("production mode should not draw debug rectangles")
	}
	if res.Pages[0].Width != 100 || res.Pages[0].Number != 1 {
		t.Fatalf("page = %+v", res.Pages[0])
	}
}

func TestFlattenOverflowIsFatalInProduction(t *testing.T) {
	text := NewTextBox("abc", mono10)
	text.SetPosition(At(Left, Bottom, pt(90, 10)))
	_, err := Flatten([]*Box{pageWith(NewTextBox("ok", mono10)), pageWith(text)}, FlattenOptions{})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	var oe *OverflowError
	if !errors.As(err, &oe) || !oe.Overflows.Right.Eq(MM(20)) {
		t.Fatalf("expected an OverflowError with 20mm right overflow, got %v", err)
	}
}

func TestFlattenOverflowIsMarkedInDebug(t *testing.T) {
	text := NewTextBox("abc", mono10)
	text.SetPosition(At(Left, Bottom, pt(90, 10)))
	res, err := Flatten([]*Box{pageWith(text)}, FlattenOptions{Mode: RenderDebug, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("debug mode must not fail on overflow: %v", err)
	}
	var red int
	for _, r := range res.Pages[0].Rects {
		if r.StrokeColor == Red {
			red++
		}
	}
	if red != 1 {
		t.Fatalf("expected one red overflow marker, got %d in %+v", red, res.Pages[0].Rects)
	}
	if len(res.Pages[0].Rects) != 2 {
		t.Fatalf("expected a level rectangle plus the marker, got %d", len(res.Pages[0].Rects))
	}
}

func TestFlattenDebugBox(t *testing.T) {
	res, err := Flatten([]*Box{pageWith(NewDebugBox(pt(50, 50)))}, FlattenOptions{Mode: RenderDebug, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	p := res.Pages[0]
	if len(p.Circles) != 1 || len(p.Lines) != 2 || len(p.Texts) != 1 {
		t.Fatalf("debug box drawn as %d circles, %d lines, %d texts", len(p.Circles), len(p.Lines), len(p.Texts))
	}
	if c := p.Circles[0]; c.CX != 50 || c.CY != 50 {
		t.Fatalf("circle center = (%g, %g)", c.CX, c.CY)
	}
}

func TestFlattenPageNumbersOnOuterSide(t *testing.T) {
	opts := FlattenOptions{PageNumbers: &PageNumbering{
		Template:  "${page}/${pages}",
		Style:     mono10,
		First:     5,
		Bottom:    MM(3),
		Margin:    MM(5),
		FirstPage: PageRight,
	}}
	res, err := Flatten([]*Box{pageWith(), pageWith()}, opts)
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	tests := []struct {
		content string
		x       float64
	}{
		{"5/6", 65},
		{"6/6", 5},
	}
	for i, tt := range tests {
		texts := res.Pages[i].Texts
		if len(texts) != 1 {
			t.Fatalf("page %d: %d texts", i, len(texts))
		}
		if texts[0].Content != tt.content || texts[0].X != tt.x || texts[0].Y != 3 {
			t.Fatalf("page %d number = %+v", i, texts[0])
		}
		if res.Pages[i].Number != 5+i {
			t.Fatalf("page %d numbered %d", i, res.Pages[i].Number)
		}
	}
}
