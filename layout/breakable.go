package layout

import "math"

// Badness values of the break tiers; lower is preferred.
const (
	BadnessFavorite    = 0
	BadnessPunctuation = 10
	BadnessWordEnd     = 20
	BadnessWhitespace  = 30
	BadnessAnywhere    = 100
)

// Sequence is a text-like value that BreakableText can split.
type Sequence[T any] interface {
	Len() int
	RuneAt(i int) rune
	// EmptyAt reports whether position i carries nothing visible.
	EmptyAt(i int) bool
	Slice(start, stop int) T
}

// Favor selects the preferred break position within the winning tier.
type Favor int

const (
	FavorRight  Favor = iota // break as late as possible
	FavorMiddle              // break near the middle of the allowed range
)

// BreakableText wraps a sequence together with preferred break offsets.
type BreakableText[T Sequence[T]] struct {
	text      T
	favorites []int
	favor     Favor
}

// FromString wraps text without preferred break offsets.
func FromString[T Sequence[T]](text T, favor Favor) BreakableText[T] {
	return BreakableText[T]{text: text, favor: favor}
}

// FromPreferredLineUp concatenates lines and remembers the line ends as
// preferred break offsets. Empty lines contribute no offset.
func FromPreferredLineUp[T Sequence[T]](lines []T, concat func([]T) T, favor Favor) BreakableText[T] {
	var favorites []int
	total := 0
	for _, l := range lines {
		if l.Len() == 0 {
			continue
		}
		total += l.Len()
		favorites = append(favorites, total)
	}
	return BreakableText[T]{text: concat(lines), favorites: favorites, favor: favor}
}

func (b BreakableText[T]) Text() T          { return b.text }
func (b BreakableText[T]) Len() int         { return b.text.Len() }
func (b BreakableText[T]) Favorites() []int { return append([]int(nil), b.favorites...) }

// Slice returns the sub-sequence [start, stop); favorites outside are dropped
// and the rest re-indexed.
func (b BreakableText[T]) Slice(start, stop int) BreakableText[T] {
	var favs []int
	for _, f := range b.favorites {
		if start <= f && f < stop {
			favs = append(favs, f-start)
		}
	}
	return BreakableText[T]{text: b.text.Slice(start, stop), favorites: favs, favor: b.favor}
}

// SliceFrom returns everything from start on, keeping a favorite at the very end.
// A favorite at start itself would be an empty head and is dropped.
func (b BreakableText[T]) SliceFrom(start int) BreakableText[T] {
	var favs []int
	for _, f := range b.favorites {
		if start < f {
			favs = append(favs, f-start)
		}
	}
	return BreakableText[T]{text: b.text.Slice(start, b.Len()), favorites: favs, favor: b.favor}
}

// Trim drops empty positions at both ends.
func (b BreakableText[T]) Trim() BreakableText[T] {
	first, last := -1, -1
	for i := 0; i < b.Len(); i++ {
		if !b.text.EmptyAt(i) {
			first = i
			break
		}
	}
	for i := b.Len() - 1; i >= 0; i-- {
		if !b.text.EmptyAt(i) {
			last = i
			break
		}
	}
	if first < 0 || last < 0 {
		return b.Slice(0, 0)
	}
	res := b.Slice(first, last+1)
	// A line end among the trailing blanks moves to the end of the trimmed text.
	for _, f := range b.favorites {
		if f > last {
			res.favorites = append(res.favorites, last+1-first)
			break
		}
	}
	return res
}

// Break splits off a head of length in [minLen, maxLen] and returns it with
// the remainder and the badness of the chosen break. Both bounds are clamped
// so the head is never empty.
func (b BreakableText[T]) Break(minLen, maxLen int) (head T, rest BreakableText[T], badness int, err error) {
	n := b.Len()
	lo := min(max(1, minLen), n-1)
	hi := max(min(n, maxLen), 1)
	if n <= 1 {
		return head, rest, 0, &BreakingError{Len: n, Min: minLen, Max: maxLen, Reason: "Not allowed to break empty or one character line."}
	}
	if hi < lo {
		return head, rest, 0, &BreakingError{Len: n, Min: lo, Max: hi, Reason: "max line length < min line length"}
	}
	candidates, badness := b.candidates(lo, hi)

	target := float64(n)
	if b.favor == FavorMiddle {
		target = float64(hi-lo) / 2
	}
	at := closestTo(candidates, target)
	return b.text.Slice(0, at), b.SliceFrom(at), badness, nil
}

func (b BreakableText[T]) candidates(lo, hi int) ([]int, int) {
	tiers := []struct {
		fn      func(lo, hi int) []int
		badness int
	}{
		{b.favoriteLengths, BadnessFavorite},
		{b.punctuationLengths, BadnessPunctuation},
		{b.wordEndLengths, BadnessWordEnd},
		{b.whitespaceLengths, BadnessWhitespace},
	}
	for _, t := range tiers {
		if res := within(t.fn(lo, hi), hi); len(res) > 0 {
			return res, t.badness
		}
	}
	res := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		res = append(res, i)
	}
	return res, BadnessAnywhere
}

// within drops candidates that would exceed the maximum or leave the head empty.
func within(candidates []int, hi int) []int {
	res := candidates[:0:0]
	for _, c := range candidates {
		if c >= 1 && c <= hi {
			res = append(res, c)
		}
	}
	return res
}

// at returns the rune at i, or 0 outside of the text.
func (b BreakableText[T]) at(i int) rune {
	if i < 0 || i >= b.Len() {
		return 0
	}
	return b.text.RuneAt(i)
}

func (b BreakableText[T]) favoriteLengths(lo, hi int) []int {
	var res []int
	for _, f := range b.favorites {
		if f >= lo && f <= hi {
			res = append(res, f)
		}
	}
	return res
}

func isPunctuation(r rune) bool {
	switch r {
	case '.', ',', ':', '!', '?', ';', '-', '|':
		return true
	}
	return false
}

func (b BreakableText[T]) punctuationLengths(lo, hi int) []int {
	var res []int
	for i := lo - 1; i <= hi; i++ {
		prev, r, next := b.at(i-1), b.at(i), b.at(i+1)
		if !isPunctuation(r) || isPunctuation(next) {
			continue
		}
		// "|:" opens a repetition and must stay with what follows.
		if prev == '|' && r == ':' {
			continue
		}
		if next == ' ' {
			res = append(res, i+2)
			continue
		}
		res = append(res, i+1)
	}
	return res
}

func (b BreakableText[T]) wordEndLengths(lo, hi int) []int {
	var res []int
	for i := max(lo-1, 1); i < hi; i++ {
		if b.at(i) == ' ' && b.at(i+1) != ' ' {
			res = append(res, i+1)
		}
	}
	return res
}

func (b BreakableText[T]) whitespaceLengths(lo, hi int) []int {
	var res []int
	for i := max(lo-1, 1); i <= hi; i++ {
		if b.at(i) != ' ' {
			continue
		}
		res = append(res, i)
		if b.at(i+1) != ' ' {
			res = append(res, i+1)
		}
	}
	return res
}

// closestTo returns the candidate nearest to target; later candidates win ties.
func closestTo(candidates []int, target float64) int {
	res := candidates[0]
	best := math.Abs(target - float64(res))
	for _, c := range candidates {
		if d := math.Abs(target - float64(c)); d <= best {
			best = d
			res = c
		}
	}
	return res
}

// Runes is a plain text Sequence; spaces are empty positions.
type Runes []rune

func (r Runes) Len() int                    { return len(r) }
func (r Runes) RuneAt(i int) rune           { return r[i] }
func (r Runes) EmptyAt(i int) bool          { return r[i] == ' ' }
func (r Runes) Slice(start, stop int) Runes { return r[start:stop:stop] }
func (r Runes) String() string              { return string(r) }

// ConcatRunes joins runes sequences.
func ConcatRunes(parts []Runes) Runes {
	var res Runes
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}
