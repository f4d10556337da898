package songlayout

import (
	"fmt"

	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/song"
)

// SchemaWrapper wraps the sections of a song to Width so that sections of
// the same type break after the same number of chords on every line.
type SchemaWrapper struct {
	Song   song.Song
	Width  layout.Length
	Config Config
}

type wrapping struct {
	typ   song.SectionType
	rest  layout.BreakableText[song.Line]
	lines []song.Line
}

// Process returns a copy of the song with rewrapped lines. Every round the
// most constrained section of a type decides how many chords go onto the
// next line of all sections of that type.
func (w SchemaWrapper) Process() (song.Song, error) {
	all := make([]*wrapping, 0, len(w.Song.Sections))
	byType := map[song.SectionType][]*wrapping{}
	for _, sec := range w.Song.Sections {
		r := &wrapping{
			typ:  sec.Type,
			rest: layout.FromPreferredLineUp(sec.Lines, song.Concat, layout.FavorRight),
		}
		all = append(all, r)
		byType[sec.Type] = append(byType[sec.Type], r)
	}
	types := w.Song.Types()

	for rounds := 0; !wrapped(all); rounds++ {
		if rounds >= layout.MaxIterations {
			return song.Song{}, fmt.Errorf("wrapping %q: %w", w.Song.Heading, layout.ErrNonConvergence)
		}
		for _, t := range types {
			if err := w.breakGroup(byType[t], w.Config.StyleForSection(t)); err != nil {
				return song.Song{}, err
			}
		}
	}

	res := song.Song{Heading: w.Song.Heading, Sections: make([]song.Section, 0, len(all))}
	for _, r := range all {
		res.Sections = append(res.Sections, song.Section{Type: r.typ, Lines: r.lines})
	}
	return res, nil
}

func wrapped(all []*wrapping) bool {
	for _, r := range all {
		if r.rest.Len() > 0 {
			return false
		}
	}
	return true
}

// breakGroup breaks the next line of every section of group that still has
// text left. Finished sections take no part in choosing the chord count.
func (w SchemaWrapper) breakGroup(group []*wrapping, style LineStyle) error {
	var active []*wrapping
	for _, r := range group {
		if r.rest.Len() > 0 {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return nil
	}
	chords := MaxChordsToFit(active[0].rest.Text(), style, w.Width)
	for _, r := range active[1:] {
		chords = min(chords, MaxChordsToFit(r.rest.Text(), style, w.Width))
	}
	for _, r := range active {
		if err := w.breakAfterChord(r, chords-1, style); err != nil {
			return err
		}
	}
	return nil
}

// breakAfterChord moves the text up to the chord with index i, and at most
// up to the following chord, into a finished line.
func (w SchemaWrapper) breakAfterChord(r *wrapping, i int, style LineStyle) error {
	text := r.rest.Text()
	chords := text.Chords()

	maxLen := MaxCharsToFit(text, style, w.Width)
	if i+1 >= 0 && i+1 < len(chords) && chords[i+1].StartIndex > 0 {
		maxLen = min(maxLen, chords[i+1].StartIndex)
	}
	minLen := 0
	if i >= 0 && i < len(chords) {
		minLen = chords[i].StartIndex + 1
	}

	if text.Len() <= maxLen {
		if text.Len() > 0 {
			r.lines = append(r.lines, text.Trim())
		}
		r.rest = layout.FromString(song.Line{}, layout.FavorRight)
		return nil
	}
	head, rest, _, err := r.rest.Break(minLen, maxLen)
	if err != nil {
		return fmt.Errorf("wrapping %s section: %w", r.typ, err)
	}
	if head.Len() > 0 {
		r.lines = append(r.lines, head.Trim())
	}
	r.rest = rest
	return nil
}
