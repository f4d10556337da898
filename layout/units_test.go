package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip checks the pt↔mm conversion round trip within a small float error.
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := PT(pt).In(UnitMM) * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-6 {
			t.Fatalf("pt→mm→pt round trip too lossy: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
	for _, mm := range samples {
		back := MM(mm).In(UnitPT) * PtToMm
		if diff := math.Abs(back - mm); diff > 1e-6 {
			t.Fatalf("mm→pt→mm round trip too lossy: in=%gmm back=%g diff=%g", mm, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		unit  Unit
	}{
		{"11mm", 11, UnitMM},
		{"17.58pt", 17.58, UnitPT},
		{"01.01pt", 1.01, UnitPT},
		{"148.5mm", 148.5, UnitMM},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if err != nil {
				t.Fatalf("ParseLength(%q) error: %v", tt.in, err)
			}
			if got.Unit != tt.unit || math.Abs(got.Value-tt.value) > 1e-9 {
				t.Fatalf("ParseLength(%q) = %v, want %g%s", tt.in, got, tt.value, UnitToString(tt.unit))
			}
		})
	}
}

func TestParseLengthErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".5mm", "Unexpected '.' at start of string."},
		{"1.mm", "Unexpected 'm' after '.'"},
		{"5sec", "Invalid unit 'sec'."},
		{"18", "Invalid unit ''."},
		{"", "Unexpected '' at start of string."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseLength(tt.in)
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			if err.Error() != tt.want {
				t.Fatalf("ParseLength(%q) error = %q, want %q", tt.in, err.Error(), tt.want)
			}
		})
	}
}

func TestLengthString(t *testing.T) {
	if got := MM(11).String(); got != "11mm" {
		t.Fatalf("String() = %q", got)
	}
	if got := PT(17.58).String(); got != "17.58pt" {
		t.Fatalf("String() = %q", got)
	}
}

func TestLengthArithmeticMixedUnits(t *testing.T) {
	sum := MM(10).Add(PT(10))
	if sum.Unit != UnitPT {
		t.Fatalf("mixed add should normalize to pt, got %v", sum.Unit)
	}
	want := 10*MmToPt + 10
	if math.Abs(sum.Value-want) > 1e-9 {
		t.Fatalf("10mm+10pt = %g, want %g", sum.Value, want)
	}
	same := MM(10).Sub(MM(4))
	if same.Unit != UnitMM || same.Value != 6 {
		t.Fatalf("10mm-4mm = %v", same)
	}
	if got := MM(3).Mul(2); got.Value != 6 || got.Unit != UnitMM {
		t.Fatalf("3mm*2 = %v", got)
	}
	if !MM(-3).Abs().Eq(MM(3)) {
		t.Fatalf("abs failed")
	}
}

func TestLengthComparisonsUseEpsilon(t *testing.T) {
	a := MM(10)
	b := MM(10).Add(PT(Epsilon / 2))
	if !a.Eq(b) {
		t.Fatalf("lengths within epsilon should be equal")
	}
	if !a.Le(b) || !b.Le(a) {
		t.Fatalf("Le should hold both ways within epsilon")
	}
	if a.Gt(b) || b.Gt(a) || a.Lt(b) || b.Lt(a) {
		t.Fatalf("strict comparisons must not hold within epsilon")
	}
	if !a.Ge(b) || !b.Ge(a) {
		t.Fatalf("Ge should hold both ways within epsilon")
	}
	if !MM(1).Lt(MM(2)) || MM(2).Lt(MM(1)) {
		t.Fatalf("Lt mismatch")
	}
	if !MM(1).Gtz() || MM(0).Gtz() || !MM(-1).Ltz() {
		t.Fatalf("sign helpers mismatch")
	}
	if !MM(-5).AtLeastZero().IsZero() {
		t.Fatalf("AtLeastZero should clamp to zero")
	}
	if got := MaxLength(MM(1), PT(10), MM(2)); !got.Eq(PT(10)) {
		t.Fatalf("MaxLength = %v", got)
	}
	if got := MinLength(MM(1), PT(10), MM(2)); !got.Eq(MM(1)) {
		t.Fatalf("MinLength = %v", got)
	}
}
