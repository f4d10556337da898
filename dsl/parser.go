package dsl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/unicode/norm"
)

// A chord sheet looks like this:
//
//	# Heading
//	```
//	[verse]
//	C       G         \\ chord line; columns anchor the chords
//	Lyric line below
//	$                 \\ an empty chord line
//	Another lyric line
//	```
//
// Chord lines and section headers are tokenized by participle; the driver
// below walks the document line by line because lyric lines are free text.

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Marker", Pattern: `\$`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "Word", Pattern: `[^ \t\[\]$]+`},
	})

	chordLineParser = participle.MustBuild[chordLine](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace"),
	)
	headerParser = participle.MustBuild[sectionHeader](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace"),
	)
)

type chordLine struct {
	Empty  bool          `parser:"@Marker?"`
	Chords []*chordToken `parser:"@@*"`
}

type chordToken struct {
	Pos  lexer.Position `parser:""`
	Text string         `parser:"@Word"`
}

type sectionHeader struct {
	Words []string `parser:"'[' @Word* ']'"`
}

// Song is the root AST node of a chord sheet.
type Song struct {
	Heading  string     `json:"heading"`
	Sections []*Section `json:"sections"`
}

// Section is a run of lines under one `[type]` header. Type is lowercased;
// it is empty when the header is missing.
type Section struct {
	Type  string  `json:"type"`
	Line  int     `json:"line"`
	Lines []*Line `json:"lines"`
}

// Line pairs a chord line with the lyric line below it.
type Line struct {
	Lyric  string  `json:"lyric"`
	Chords []Chord `json:"chords"`
	Line   int     `json:"line"`
}

// Chord is a chord token anchored at a rune column of the lyric.
type Chord struct {
	Chord       string `json:"chord"`
	StartIndex  int    `json:"startIndex"`
	Conditional bool   `json:"conditional"`
}

// Name strips the parentheses of a conditional chord.
func (c Chord) Name() string {
	if c.Conditional {
		return c.Chord[1 : len(c.Chord)-1]
	}
	return c.Chord
}

// ParseError reports a syntax error at a 1-based line and column.
type ParseError struct {
	Line     int
	Column   int
	Msg      string
	Expected string
	Actual   string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: %s", e.Line, e.Column, e.Msg)
	if e.Expected != "" {
		fmt.Fprintf(&b, ": expected %q, got %q", e.Expected, e.Actual)
	}
	return b.String()
}

const fence = "```"

// Parse reads a chord sheet from r.
func Parse(r io.Reader) (*Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString parses a chord sheet. Input is normalized to NFC so that a
// composed and a decomposed umlaut occupy the same single column.
func ParseString(input string) (*Song, error) {
	input = norm.NFC.String(strings.ReplaceAll(input, "\r", ""))
	p := &sheetParser{lines: strings.Split(input, "\n")}
	return p.parse()
}

type sheetParser struct {
	lines []string
	pos   int
}

func (p *sheetParser) eof() bool { return p.pos >= len(p.lines) }

func (p *sheetParser) current() string { return p.lines[p.pos] }

func (p *sheetParser) errorf(col int, expected, actual, msg string) *ParseError {
	return &ParseError{Line: p.pos + 1, Column: col, Msg: msg, Expected: expected, Actual: actual}
}

func (p *sheetParser) unexpectedEOF() *ParseError {
	return &ParseError{Line: len(p.lines), Column: 1, Msg: "unexpected end of file"}
}

// stripComment drops everything from a `\\` line comment on.
func stripComment(line string) string {
	if i := strings.Index(line, `\\`); i >= 0 {
		return line[:i]
	}
	return line
}

func (p *sheetParser) skipEmptyLines() {
	for !p.eof() && strings.TrimSpace(stripComment(p.current())) == "" {
		p.pos++
	}
}

func (p *sheetParser) parse() (*Song, error) {
	if p.eof() || !strings.HasPrefix(p.current(), "#") {
		actual := ""
		if !p.eof() {
			actual = p.current()
		}
		return nil, p.errorf(1, "#", actual, "unexpected token")
	}
	song := &Song{Heading: strings.TrimSpace(stripComment(p.current()[1:]))}
	p.pos++

	if err := p.readFence(); err != nil {
		return nil, err
	}
	for {
		p.skipEmptyLines()
		if p.eof() {
			return nil, p.unexpectedEOF()
		}
		if strings.TrimSpace(stripComment(p.current())) == fence {
			return song, nil
		}
		section, err := p.readSection()
		if err != nil {
			return nil, err
		}
		song.Sections = append(song.Sections, section)
	}
}

func (p *sheetParser) readFence() error {
	p.skipEmptyLines()
	if p.eof() {
		return p.unexpectedEOF()
	}
	if got := strings.TrimSpace(stripComment(p.current())); got != fence {
		return p.errorf(1, fence, got, "unexpected token")
	}
	p.pos++
	return nil
}

func (p *sheetParser) readSection() (*Section, error) {
	section := &Section{Line: p.pos + 1}
	if strings.HasPrefix(p.current(), "[") {
		typ, err := p.readHeader()
		if err != nil {
			return nil, err
		}
		section.Type = typ
		p.skipEmptyLines()
	}
	for !p.eof() && !strings.HasPrefix(p.current(), "`") && !strings.HasPrefix(p.current(), "[") {
		line, err := p.readLinePair()
		if err != nil {
			return nil, err
		}
		section.Lines = append(section.Lines, line)
		p.skipEmptyLines()
	}
	return section, nil
}

func (p *sheetParser) readHeader() (string, error) {
	raw := strings.TrimSpace(stripComment(p.current()))
	header, err := headerParser.ParseString("", raw)
	if err != nil {
		return "", p.wrap(err)
	}
	p.pos++
	return strings.ToLower(strings.Join(header.Words, " ")), nil
}

func (p *sheetParser) readLinePair() (*Line, error) {
	chords, err := p.readChordLine()
	if err != nil {
		return nil, err
	}
	p.pos++
	if p.eof() {
		return nil, p.unexpectedEOF()
	}
	line := &Line{Lyric: stripComment(p.current()), Chords: chords, Line: p.pos + 1}
	p.pos++
	return line, nil
}

func (p *sheetParser) readChordLine() ([]Chord, error) {
	parsed, err := chordLineParser.ParseString("", stripComment(p.current()))
	if err != nil {
		return nil, p.wrap(err)
	}
	chords := make([]Chord, 0, len(parsed.Chords))
	for _, tok := range parsed.Chords {
		chords = append(chords, Chord{
			Chord:       tok.Text,
			StartIndex:  tok.Pos.Column - 1,
			Conditional: len(tok.Text) > 2 && strings.HasPrefix(tok.Text, "(") && strings.HasSuffix(tok.Text, ")"),
		})
	}
	return chords, nil
}

// wrap converts a participle error on the current line into a ParseError.
func (p *sheetParser) wrap(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &ParseError{Line: p.pos + 1, Column: pos.Column, Msg: perr.Message()}
	}
	return fmt.Errorf("line %d: %w", p.pos+1, err)
}
