package songlayout

import (
	"sort"
	"strings"

	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/song"
)

// SongLineBox draws the chords of line in a row above its lyric. A chord is
// shifted right by the width of the lyric in front of it. The box has its
// left-top corner at the origin.
func SongLineBox(line song.Line, style LineStyle) *layout.Box {
	box := layout.NewArrangement(layout.Unbound())
	pointer := layout.Origin().MoveDown(style.Chords.LineHeight())

	lyric := line.Lyric()
	runes := []rune(lyric)
	for _, c := range line.Chords() {
		if c.StartIndex >= len(runes) {
			continue
		}
		offset := style.Lyric.WidthOfText(string(runes[:c.StartIndex]))
		chord := layout.NewTextBox(c.Chord, style.Chords)
		chord.SetPosition(layout.At(layout.Left, layout.Bottom, pointer.MoveRight(offset)))
		box.AppendChild(chord)
	}

	pointer = pointer.MoveDown(style.Lyric.LineHeight())
	text := layout.NewTextBox(lyric, style.Lyric)
	text.SetPosition(layout.At(layout.Left, layout.Bottom, pointer))
	box.AppendChild(text)
	return box
}

// MaxCharsToFit returns the length of the longest prefix of line whose box
// is not wider than width. Box widths grow with the prefix length.
func MaxCharsToFit(line song.Line, style LineStyle, width layout.Length) int {
	tooWide := sort.Search(line.Len()+1, func(n int) bool {
		return SongLineBox(line.Slice(0, n), style).Rectangle().Width().Gt(width)
	})
	return max(tooWide-1, 0)
}

// MaxChordsToFit counts the leading chords of line that fit into width
// together with the lyric up to and including the rune they start on.
func MaxChordsToFit(line song.Line, style LineStyle, width layout.Length) int {
	count := 0
	for _, c := range line.Chords() {
		if SongLineBox(line.Slice(0, c.StartIndex+1), style).Rectangle().Width().Gt(width) {
			return count
		}
		count++
	}
	return count
}

// chordRow is the printed form of a line in a chord-only section.
func chordRow(t song.SectionType, line song.Line) string {
	chords := line.Chords()
	names := make([]string, 0, len(chords))
	for _, c := range chords {
		names = append(names, c.Chord)
	}
	return string(t) + "   " + strings.Join(names, " ")
}

// SectionBox stacks the lines of sec below each other with its left-top
// corner at the origin. Intro, outro and interlude sections print only one
// row of chords per line, prefixed with the section type.
func SectionBox(sec song.Section, cfg Config) *layout.Box {
	box := layout.NewArrangement(layout.Unbound())
	pointer := layout.Origin()
	if sec.Type.IsChordOnly() {
		for _, l := range sec.Lines {
			row := layout.NewTextBox(chordRow(sec.Type, l), cfg.Chords)
			row.SetPosition(layout.At(layout.Left, layout.Top, pointer))
			box.AppendChild(row)
			pointer = pointer.MoveDown(cfg.Chords.LineHeight())
		}
		return box
	}

	style := cfg.StyleForSection(sec.Type)
	for _, l := range sec.Lines {
		lineBox := SongLineBox(l, style)
		lineBox.SetPosition(layout.At(layout.Left, layout.Top, pointer))
		box.AppendChild(lineBox)
		pointer = pointer.MoveDown(lineBox.Rectangle().Height())
	}
	return box
}

// titleBox centers the heading at the top of rect.
func titleBox(s song.Song, cfg Config, rect layout.Rectangle) *layout.Box {
	title := layout.NewTextBox(s.Heading, cfg.Title)
	title.SetPosition(layout.At(layout.XCenter, layout.Top, rect.Point(layout.XCenter, layout.Top)))
	return title
}
