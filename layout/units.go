package layout

import (
	"fmt"
	"math"
	"strconv"
)

// This file defines unit-safe lengths used by every geometric type of the engine.

// Unit represents the unit a length value was specified in.
type Unit int

const (
	UnitMM Unit = iota // millimeters
	UnitPT             // points
)

// Conversion constants between pt and mm.
const (
	MmToPt = 2.8346456693
	PtToMm = 0.3527777778
)

// Epsilon is the tolerance (in pt) used by all Length comparisons.
const Epsilon = 0.000001

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

func unitFromString(s string) (Unit, bool) {
	switch s {
	case "mm":
		return UnitMM, true
	case "pt":
		return UnitPT, true
	}
	return UnitMM, false
}

// Length preserves a numeric value with its unit. The zero value is 0mm.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Zero is the neutral length.
var Zero = Length{}

// Len creates a length from a value and unit.
func Len(v float64, u Unit) Length { return Length{Value: v, Unit: u} }

func MM(v float64) Length { return Length{Value: v, Unit: UnitMM} }
func PT(v float64) Length { return Length{Value: v, Unit: UnitPT} }

// In converts this length to the target unit.
func (l Length) In(target Unit) float64 {
	if l.Unit == target {
		return l.Value
	}
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitPT:
		return l.Value * PtToMm
	}
	return l.Value
}

func (l Length) ToMM() float64 { return l.In(UnitMM) }
func (l Length) ToPT() float64 { return l.In(UnitPT) }

// Add sums two lengths; differing units are normalized through pt.
func (l Length) Add(o Length) Length {
	if l.Unit == o.Unit {
		return Length{Value: l.Value + o.Value, Unit: l.Unit}
	}
	return PT(l.ToPT() + o.ToPT())
}

// Sub subtracts o from l; differing units are normalized through pt.
func (l Length) Sub(o Length) Length {
	if l.Unit == o.Unit {
		return Length{Value: l.Value - o.Value, Unit: l.Unit}
	}
	return PT(l.ToPT() - o.ToPT())
}

func (l Length) Mul(f float64) Length { return Length{Value: l.Value * f, Unit: l.Unit} }
func (l Length) Neg() Length          { return l.Mul(-1) }
func (l Length) Abs() Length          { return Length{Value: math.Abs(l.Value), Unit: l.Unit} }

func (l Length) diff(o Length) float64 { return l.ToPT() - o.ToPT() }

func (l Length) Lt(o Length) bool { return l.diff(o) < -Epsilon }
func (l Length) Gt(o Length) bool { return l.diff(o) > Epsilon }
func (l Length) Le(o Length) bool { return l.diff(o) <= Epsilon }
func (l Length) Ge(o Length) bool { return l.diff(o) >= -Epsilon }
func (l Length) Eq(o Length) bool { return math.Abs(l.diff(o)) <= Epsilon }

func (l Length) IsZero() bool { return l.Eq(Zero) }
func (l Length) Gtz() bool    { return l.Gt(Zero) }
func (l Length) Ltz() bool    { return Zero.Gt(l) }

// AtLeastZero clamps negative lengths to zero.
func (l Length) AtLeastZero() Length {
	if l.Ltz() {
		return Zero
	}
	return l
}

// MaxLength returns the greatest of the given lengths (Zero for none).
func MaxLength(ls ...Length) Length {
	if len(ls) == 0 {
		return Zero
	}
	res := ls[0]
	for _, l := range ls[1:] {
		if l.ToPT() > res.ToPT() {
			res = l
		}
	}
	return res
}

// MinLength returns the smallest of the given lengths (Zero for none).
func MinLength(ls ...Length) Length {
	if len(ls) == 0 {
		return Zero
	}
	res := ls[0]
	for _, l := range ls[1:] {
		if l.ToPT() < res.ToPT() {
			res = l
		}
	}
	return res
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ParseLength parses strings like "11mm" or "17.58pt".
// Only plain decimals are accepted: no sign, no exponent, no whitespace.
func ParseLength(s string) (Length, error) {
	rs := []rune(s)
	at := func(i int) string {
		if i < len(rs) {
			return string(rs[i])
		}
		return ""
	}
	isDigit := func(i int) bool { return i < len(rs) && rs[i] >= '0' && rs[i] <= '9' }

	i := 0
	for isDigit(i) {
		i++
	}
	if i == 0 {
		return Zero, fmt.Errorf("Unexpected '%s' at start of string.", at(0))
	}
	if at(i) == "." {
		i++
		if !isDigit(i) {
			return Zero, fmt.Errorf("Unexpected '%s' after '.'", at(i))
		}
		for isDigit(i) {
			i++
		}
	}
	valueStr := string(rs[:i])
	unitStr := string(rs[i:])
	unit, ok := unitFromString(unitStr)
	if !ok {
		return Zero, fmt.Errorf("Invalid unit '%s'.", unitStr)
	}
	v, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return Zero, fmt.Errorf("invalid number %q: %w", valueStr, err)
	}
	return Length{Value: v, Unit: unit}, nil
}

// MustParseLength is like ParseLength but panics on malformed input.
func MustParseLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return l
}
