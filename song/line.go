package song

import "strings"

// Char is one lyric rune with the chord that starts on it, if any.
type Char struct {
	R     rune   `json:"char"`
	Chord string `json:"chord,omitempty"`
}

// ChordAt is a chord together with the rune index it starts on.
type ChordAt struct {
	Chord      string `json:"chord"`
	StartIndex int    `json:"startIndex"`
}

// Line is a lyric line annotated with chords. It is never mutated;
// every operation returns a new line.
type Line []Char

// NewLine pads lyric with spaces up to the last chord, attaches the chords
// and makes sure the line ends in a space.
func NewLine(lyric string, chords []ChordAt) Line {
	rs := []rune(lyric)
	n := len(rs)
	for _, c := range chords {
		n = max(n, c.StartIndex+1)
	}
	l := make(Line, n)
	for i := range l {
		l[i].R = ' '
		if i < len(rs) {
			l[i].R = rs[i]
		}
	}
	for _, c := range chords {
		l[c.StartIndex].Chord = c.Chord
	}
	return EnsureSpaceAtEnd(l)
}

// EnsureSpaceAtEnd appends a space unless the line already ends with one.
func EnsureSpaceAtEnd(l Line) Line {
	if len(l) > 0 && l[len(l)-1].R == ' ' {
		return l
	}
	res := make(Line, len(l), len(l)+1)
	copy(res, l)
	return append(res, Char{R: ' '})
}

// Concat joins lines in order.
func Concat(lines []Line) Line {
	var res Line
	for _, l := range lines {
		res = append(res, l...)
	}
	return res
}

func (l Line) Len() int                   { return len(l) }
func (l Line) RuneAt(i int) rune          { return l[i].R }
func (l Line) EmptyAt(i int) bool         { return l[i].R == ' ' && l[i].Chord == "" }
func (l Line) IsEmpty() bool              { return len(l) == 0 }
func (l Line) Slice(start, stop int) Line { return l[start:stop:stop] }

// Lyric returns the plain text of the line.
func (l Line) Lyric() string {
	var b strings.Builder
	for _, c := range l {
		b.WriteRune(c.R)
	}
	return b.String()
}

func (l Line) String() string { return l.Lyric() }

// Chords lists the chords in order of their start index.
func (l Line) Chords() []ChordAt {
	var res []ChordAt
	for i, c := range l {
		if c.Chord != "" {
			res = append(res, ChordAt{Chord: c.Chord, StartIndex: i})
		}
	}
	return res
}

// Trim drops leading and trailing blanks that carry no chord.
func (l Line) Trim() Line {
	first, last := -1, -1
	for i := range l {
		if !l.EmptyAt(i) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return l.Slice(0, 0)
	}
	return l.Slice(first, last+1)
}
