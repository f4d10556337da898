package song

import (
	"strings"

	"github.com/lasbec/simplechords/dsl"
)

// SectionType names the role of a section within a song.
type SectionType string

const (
	Interlude SectionType = "interlude"
	Refrain   SectionType = "refrain"
	Chorus    SectionType = "chorus"
	Bridge    SectionType = "bridge"
	Verse     SectionType = "verse"
	Intro     SectionType = "intro"
	Outro     SectionType = "outro"
)

var wellKnown = map[SectionType]bool{
	Interlude: true, Refrain: true, Chorus: true, Bridge: true,
	Verse: true, Intro: true, Outro: true,
}

// aliases map header spellings of German chord sheets to section types.
var aliases = map[string]SectionType{
	"ref":          Refrain,
	"vorspiel":     Intro,
	"instrumental": Interlude,
	"übergang":     Interlude,
	"nachspiel":    Outro,
	"schluss":      Outro,
}

// ParseSectionType lowercases raw, resolves aliases and maps an empty
// header to a verse.
func ParseSectionType(raw string) SectionType {
	t := strings.ToLower(strings.TrimSpace(raw))
	if a, ok := aliases[t]; ok {
		return a
	}
	if t == "" {
		return Verse
	}
	return SectionType(t)
}

func (t SectionType) IsWellKnown() bool { return wellKnown[t] }

// IsChordOnly reports whether sections of this type are printed as chord rows.
func (t SectionType) IsChordOnly() bool {
	switch t {
	case Intro, Outro, Interlude:
		return true
	}
	return false
}

// Section is a typed group of lines.
type Section struct {
	Type  SectionType `json:"type"`
	Lines []Line      `json:"lines"`
}

// Song is the read-only input of the layout engine.
type Song struct {
	Heading  string    `json:"heading"`
	Sections []Section `json:"sections"`
}

// FromAST converts a parsed chord sheet.
func FromAST(ast *dsl.Song) Song {
	s := Song{Heading: ast.Heading}
	for _, sec := range ast.Sections {
		section := Section{Type: ParseSectionType(sec.Type)}
		for _, l := range sec.Lines {
			chords := make([]ChordAt, 0, len(l.Chords))
			for _, c := range l.Chords {
				chords = append(chords, ChordAt{Chord: c.Chord, StartIndex: c.StartIndex})
			}
			section.Lines = append(section.Lines, NewLine(l.Lyric, chords))
		}
		s.Sections = append(s.Sections, section)
	}
	return s
}

// SectionsOfType returns the indices of the sections with type t, in order.
func (s Song) SectionsOfType(t SectionType) []int {
	var res []int
	for i, sec := range s.Sections {
		if sec.Type == t {
			res = append(res, i)
		}
	}
	return res
}

// Types lists the distinct section types in order of first appearance.
func (s Song) Types() []SectionType {
	seen := map[SectionType]bool{}
	var res []SectionType
	for _, sec := range s.Sections {
		if !seen[sec.Type] {
			seen[sec.Type] = true
			res = append(res, sec.Type)
		}
	}
	return res
}
