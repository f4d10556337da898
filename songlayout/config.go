// Package songlayout turns songs into pages of positioned boxes.
package songlayout

import (
	"github.com/charmbracelet/log"

	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/song"
)

// Config carries the text styles and spacing used by every layout strategy.
type Config struct {
	Lyric   layout.TextStyle
	Refrain layout.TextStyle
	Chorus  layout.TextStyle
	Title   layout.TextStyle
	Chords  layout.TextStyle

	SectionDistance layout.Length

	// Debug marks where every section starts and outlines the type area.
	Debug bool

	Logger *log.Logger
}

// LineStyle pairs the lyric style of a section with the chord style.
type LineStyle struct {
	Lyric  layout.TextStyle
	Chords layout.TextStyle
}

// StyleForSection picks the chorus or refrain style for those sections and
// the plain lyric style otherwise.
func (c Config) StyleForSection(t song.SectionType) LineStyle {
	lyric := c.Lyric
	switch t {
	case song.Chorus:
		lyric = c.Chorus
	case song.Refrain:
		lyric = c.Refrain
	}
	return LineStyle{Lyric: lyric, Chords: c.Chords}
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
