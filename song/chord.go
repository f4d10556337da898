package song

import "strings"

// Chord is a parsed chord name. Notes are semitones above A.
type Chord struct {
	Root int
	Type string
	// Bass is the slash bass note, or -1.
	Bass int
}

var rootNotes = map[byte]int{
	'A': 0, 'B': 2, 'H': 2, 'C': 3, 'D': 5, 'E': 7, 'F': 8, 'G': 10,
}

var chordTypes = map[string]bool{
	"Major": true, "minor": true,
	"7": true, "Major7": true, "minor7": true, "minorMajor7": true,
	"6": true, "minor6": true,
	"9": true, "minor9": true, "add9": true, "minoradd9": true,
	"diminished": true, "diminished7": true,
	"sus2": true, "sus4": true, "7sus4": true,
	"5": true,
}

// IsSpecialSign reports repeat markers, which may stand in a chord line.
func IsSpecialSign(s string) bool { return s == "|:" || s == ":|" }

// ParseChord parses names like "Am", "cis", "F#maj7", "B_dim7" or "C/E".
// A lowercase root means minor; parentheses mark a conditional chord and
// are ignored here.
func ParseChord(s string) (Chord, bool) {
	if len(s) > 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = s[1 : len(s)-1]
	}
	bass := -1
	if i := strings.LastIndexByte(s, '/'); i > 0 {
		b, rest, ok := parseNote(s[i+1:])
		if !ok || rest != "" {
			return Chord{}, false
		}
		bass = b
		s = s[:i]
	}
	root, rest, ok := parseNote(s)
	if !ok {
		return Chord{}, false
	}
	typ, ok := parseChordType(s[0] >= 'a', rest)
	if !ok {
		return Chord{}, false
	}
	return Chord{Root: root, Type: typ, Bass: bass}, true
}

// parseNote reads a root letter and an optional accidental.
func parseNote(s string) (note int, rest string, ok bool) {
	if s == "" {
		return 0, "", false
	}
	note, ok = rootNotes[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, "", false
	}
	rest = s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		note, rest = note+1, rest[1:]
	case strings.HasPrefix(rest, "is"):
		note, rest = note+1, rest[2:]
	case strings.HasPrefix(rest, "b"):
		note, rest = note+11, rest[1:]
	case strings.HasPrefix(rest, "es"):
		note, rest = note+11, rest[2:]
	case strings.HasPrefix(rest, "s") && !strings.HasPrefix(rest, "sus") && strings.ContainsRune("AaEe", rune(s[0])):
		// As, Es
		note, rest = note+11, rest[1:]
	}
	return note % 12, rest, true
}

func parseChordType(lowerRoot bool, s string) (string, bool) {
	minor := ""
	if lowerRoot {
		minor = "minor"
	}
	if strings.HasPrefix(s, "m") && !strings.HasPrefix(s, "maj") {
		s = s[1:]
		minor = "minor"
	}
	raw := minor + strings.ToLower(s)
	if raw == "" {
		return "Major", true
	}
	raw = strings.NewReplacer("_", "", "^", "").Replace(raw)
	raw = strings.Replace(raw, "maj", "Major", 1)
	raw = strings.Replace(raw, "dim", "diminished", 1)
	raw = strings.Replace(raw, "+", "5", 1)
	raw = strings.Replace(raw, "power", "5", 1)
	raw = strings.Replace(raw, "pow", "5", 1)
	if lowerRoot {
		// f#dim is diminished, not minor diminished
		raw = strings.Replace(raw, "minordiminished", "diminished", 1)
	}
	return raw, chordTypes[raw]
}
