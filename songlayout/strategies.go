package songlayout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/song"
)

// Strategy identifies one way of laying out a song.
type Strategy int

const (
	// StrategySimple prints every source line as it is.
	StrategySimple Strategy = iota
	// StrategyDoubleLine joins pairs of adjacent lines first.
	StrategyDoubleLine
	// StrategyNice breaks lines where the summed badness of a section type is lowest.
	StrategyNice
	// StrategyDense puts as many chords as possible onto each line.
	StrategyDense
)

// Strategies lists the strategies in the order the pagination driver tries them.
var Strategies = []Strategy{StrategySimple, StrategyDoubleLine, StrategyNice, StrategyDense}

func (s Strategy) String() string {
	switch s {
	case StrategySimple:
		return "simple"
	case StrategyDoubleLine:
		return "double"
	case StrategyNice:
		return "nice"
	case StrategyDense:
		return "dense"
	}
	return "Strategy(" + strconv.Itoa(int(s)) + ")"
}

// nonEmptySections drops sections without lines; they have no extent to place.
func nonEmptySections(s song.Song) []song.Section {
	res := make([]song.Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		if len(sec.Lines) > 0 {
			res = append(res, sec)
		}
	}
	return res
}

// LayoutSimple puts the title on top of the first page and the sections
// below it. A section that reaches the page bottom starts a new page.
func LayoutSimple(s song.Song, cfg Config, gen layout.RectangleGenerator) []*layout.Box {
	first := layout.ArrangementFromRect(gen.Next())
	title := titleBox(s, cfg, first.Rectangle())
	first.AppendChild(title)

	page := first
	pages := []*layout.Box{first}
	leftBottomOfLast := page.Rectangle().Point(layout.Left, layout.Top).
		MoveDown(title.Rectangle().Height()).
		MoveDown(title.Rectangle().Height())
	for _, sec := range nonEmptySections(s) {
		box := SectionBox(sec, cfg)
		box.SetPosition(layout.At(layout.Left, layout.Top, leftBottomOfLast))
		if box.Rectangle().Point(layout.Left, layout.Bottom).IsLowerOrEq(page.Rectangle().Point(layout.Left, layout.Bottom)) {
			page = layout.ArrangementFromRect(gen.Next())
			pages = append(pages, page)
			box.SetPosition(layout.At(layout.Left, layout.Top, page.Rectangle().Point(layout.Left, layout.Top)))
		}
		page.AppendChild(box)
		leftBottomOfLast = box.Rectangle().Point(layout.Left, layout.Bottom).MoveDown(cfg.SectionDistance)
	}
	return pages
}

// LayoutDoubleLine is LayoutSimple on a song whose lines are joined in pairs.
func LayoutDoubleLine(s song.Song, cfg Config, gen layout.RectangleGenerator) []*layout.Box {
	doubled := song.Song{Heading: s.Heading, Sections: make([]song.Section, 0, len(s.Sections))}
	for _, sec := range s.Sections {
		doubled.Sections = append(doubled.Sections, song.Section{Type: sec.Type, Lines: doubleLines(sec.Lines)})
	}
	return LayoutSimple(doubled, cfg, gen)
}

// doubleLines joins lines 0+1, 2+3 and so on; an odd last line stays alone.
func doubleLines(lines []song.Line) []song.Line {
	res := make([]song.Line, 0, (len(lines)+1)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		res = append(res, song.Concat([]song.Line{lines[i], lines[i+1]}))
	}
	if len(lines)%2 == 1 {
		res = append(res, lines[len(lines)-1])
	}
	return res
}

// workingLine is a section being rewrapped: what is left of its text and the
// box collecting the finished lines.
type workingLine struct {
	rest   layout.BreakableText[song.Line]
	result *layout.Box
	style  LineStyle
}

func (l *workingLine) width() layout.Length { return l.result.Rectangle().Width() }

func (l *workingLine) maxChordsToFit() int {
	return MaxChordsToFit(l.rest.Text(), l.style, l.width())
}

// breakBetweenChords breaks the rest after the chord with index start and
// before the chord with index stop.
func (l *workingLine) breakBetweenChords(start, stop int) (song.Line, layout.BreakableText[song.Line], int, error) {
	text := l.rest.Text()
	chords := text.Chords()
	minLen := 1
	if start >= 0 && start < len(chords) {
		minLen = chords[start].StartIndex + 1
	}
	maxLen := MaxCharsToFit(text, l.style, l.width())
	if stop >= 0 && stop < len(chords) && chords[stop].StartIndex > 0 {
		maxLen = min(maxLen, chords[stop].StartIndex)
	}
	return l.rest.Break(minLen, maxLen)
}

// badness is the badness of breaking after the given number of chords.
// A rest that cannot be broken any further counts as 1.
func (l *workingLine) badness(chords int) (int, error) {
	if l.rest.Len() <= 1 {
		return 1, nil
	}
	_, _, badness, err := l.breakBetweenChords(chords-1, chords)
	return badness, err
}

// place appends a finished line below the lines placed so far.
func (l *workingLine) place(line song.Line) {
	box := SongLineBox(line, l.style)
	box.SetPosition(layout.At(layout.Left, layout.Top, l.result.Rectangle().Point(layout.Left, layout.Bottom)))
	l.result.AppendChild(box)
}

// reduce moves the next line of the rest into the result.
func (l *workingLine) reduce(chords int) error {
	switch l.rest.Len() {
	case 0:
		return nil
	case 1:
		l.place(l.rest.Text())
		l.rest = l.rest.Slice(0, 0)
		return nil
	}
	head, rest, _, err := l.breakBetweenChords(chords-1, chords)
	if err != nil {
		return err
	}
	l.place(head)
	l.rest = rest.Trim()
	return nil
}

// unfinished drops the lines whose rest is used up. A finished line fits no
// chords and must not constrain the others.
func unfinished(lines []*workingLine) []*workingLine {
	res := make([]*workingLine, 0, len(lines))
	for _, l := range lines {
		if l.rest.Len() > 0 {
			res = append(res, l)
		}
	}
	return res
}

func minChordsToFit(lines []*workingLine) int {
	res := math.MaxInt
	for _, l := range lines {
		res = min(res, l.maxChordsToFit())
	}
	return res
}

// nicestChordCount returns the chord count per line with the lowest summed
// badness over all lines; later counts win ties.
func nicestChordCount(lines []*workingLine) (int, error) {
	maxChords := minChordsToFit(lines)
	res, best := 0, math.MaxInt
	for i := 1; i <= maxChords; i++ {
		sum := 0
		for _, l := range lines {
			b, err := l.badness(i)
			if err != nil {
				return 0, err
			}
			sum += b
		}
		if sum <= best {
			res, best = i, sum
		}
	}
	return res, nil
}

func worstBadness(lines []*workingLine, chords int) (int, error) {
	worst := math.MinInt
	for _, l := range lines {
		b, err := l.badness(chords)
		if err != nil {
			return 0, err
		}
		worst = max(worst, b)
	}
	return worst, nil
}

// densestChordCount takes as many chords as fit, unless that forces a
// mid-word break and one chord less would break more cleanly.
func densestChordCount(lines []*workingLine) (int, error) {
	most := minChordsToFit(lines)
	worst, err := worstBadness(lines, most)
	if err != nil || worst < layout.BadnessAnywhere {
		return most, err
	}
	fewer, err := worstBadness(lines, most-1)
	if err != nil {
		return 0, err
	}
	if fewer < worst {
		return most - 1, nil
	}
	return most, nil
}

func pickFor(strategy Strategy) (func([]*workingLine) (int, error), error) {
	switch strategy {
	case StrategyNice:
		return nicestChordCount, nil
	case StrategyDense:
		return densestChordCount, nil
	}
	return nil, fmt.Errorf("strategy %s does not rewrap lines", strategy)
}

// rewrap breaks the lines of one group of same-type sections in lock-step.
func rewrap(lines []*workingLine, pick func([]*workingLine) (int, error)) error {
	for rounds := 0; ; rounds++ {
		active := unfinished(lines)
		if len(active) == 0 {
			return nil
		}
		if rounds >= layout.MaxIterations {
			return layout.ErrNonConvergence
		}
		chords, err := pick(active)
		if err != nil {
			return err
		}
		for _, l := range active {
			if err := l.reduce(chords); err != nil {
				return err
			}
		}
	}
}

// LayoutAdjustable rewraps the sections to the page width, sections of one
// type together, and stacks the title and the sections onto pages from gen.
// strategy is StrategyNice or StrategyDense.
func LayoutAdjustable(s song.Song, cfg Config, gen layout.RectangleGenerator, strategy Strategy) ([]*layout.Box, error) {
	pick, err := pickFor(strategy)
	if err != nil {
		return nil, err
	}
	rect := gen.Clone().Next()
	title := titleBox(s, cfg, rect)

	left, right := rect.VBorder(layout.Left), rect.VBorder(layout.Right)
	bounds := layout.NewBounds(layout.BoundsSpec{MinLeft: &left, MaxLeft: &left, MinRight: &right, MaxRight: &right})

	sections := nonEmptySections(s)
	byType := map[song.SectionType][]*workingLine{}
	var types []song.SectionType
	results := make([]*layout.Box, 0, len(sections))
	for _, sec := range sections {
		if _, ok := byType[sec.Type]; !ok {
			types = append(types, sec.Type)
		}
		l := &workingLine{
			rest:   layout.FromPreferredLineUp(sec.Lines, song.Concat, layout.FavorRight),
			result: layout.NewArrangement(bounds),
			style:  cfg.StyleForSection(sec.Type),
		}
		byType[sec.Type] = append(byType[sec.Type], l)
		results = append(results, l.result)
	}
	for _, t := range types {
		if err := rewrap(byType[t], pick); err != nil {
			return nil, fmt.Errorf("%s layout of %s sections: %w", strategy, t, err)
		}
	}

	items := make([]layout.StackItem, 0, len(results)+1)
	items = append(items, layout.StackItem{
		Box:   title,
		Style: &layout.StackStyle{Alignment: layout.XCenter, Distance: title.Rectangle().Height()},
	})
	for _, r := range results {
		items = append(items, layout.StackItem{Box: r})
	}
	return layout.Stack(items, layout.StackStyle{Alignment: layout.Left, Distance: cfg.SectionDistance}, gen), nil
}
