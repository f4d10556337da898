package song

import (
	"fmt"

	"go.uber.org/multierr"
)

// WarningKind classifies checker findings.
type WarningKind int

const (
	UnknownSectionType WarningKind = iota
	InvalidChord
	SchemaMismatch
)

func (k WarningKind) String() string {
	switch k {
	case UnknownSectionType:
		return "unknown-section"
	case InvalidChord:
		return "invalid-chord"
	case SchemaMismatch:
		return "schema-mismatch"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a non-fatal finding about a song. Section and Line are 0-based
// indices; Line is -1 for section level findings.
type Warning struct {
	Kind    WarningKind
	Section int
	Line    int
	Message string
}

func (w Warning) Error() string { return w.Message }

// Schema is the flat chord sequence of the first section of a type.
type Schema []string

// SchemaOf flattens the chords of lines.
func SchemaOf(lines []Line) Schema {
	var res Schema
	for _, l := range lines {
		for _, c := range l.Chords() {
			res = append(res, c.Chord)
		}
	}
	return res
}

// Check reports unknown section types, invalid chords and sections whose
// chords differ from the first section of the same type.
func Check(s Song) []Warning {
	var warnings []Warning
	for si, sec := range s.Sections {
		if !sec.Type.IsWellKnown() {
			warnings = append(warnings, Warning{
				Kind: UnknownSectionType, Section: si, Line: -1,
				Message: fmt.Sprintf("Unknown section type '%s'", sec.Type),
			})
		}
		for li, l := range sec.Lines {
			for _, c := range l.Chords() {
				if IsSpecialSign(c.Chord) {
					continue
				}
				if _, ok := ParseChord(c.Chord); !ok {
					warnings = append(warnings, Warning{
						Kind: InvalidChord, Section: si, Line: li,
						Message: fmt.Sprintf("Invalid chord '%s' in: '%s'", c.Chord, l.Lyric()),
					})
				}
			}
		}
	}

	schemas := map[SectionType]Schema{}
	for si, sec := range s.Sections {
		schema, ok := schemas[sec.Type]
		if !ok {
			schemas[sec.Type] = SchemaOf(sec.Lines)
			continue
		}
		warnings = append(warnings, checkAgainstSchema(si, sec, schema)...)
	}
	return warnings
}

func checkAgainstSchema(si int, sec Section, schema Schema) []Warning {
	var warnings []Warning
	next := 0
	for li, l := range sec.Lines {
		for _, c := range l.Chords() {
			want := ""
			if next < len(schema) {
				want = schema[next]
			}
			next++
			if want != c.Chord {
				warnings = append(warnings, Warning{
					Kind: SchemaMismatch, Section: si, Line: li,
					Message: fmt.Sprintf("line schemas are differing for '%s' sections near: '%s'", sec.Type, l.Lyric()),
				})
				break
			}
		}
	}
	return warnings
}

// Strict combines warnings into a single error, or nil when there are none.
func Strict(warnings []Warning) error {
	var err error
	for _, w := range warnings {
		err = multierr.Append(err, w)
	}
	return err
}
