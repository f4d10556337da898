package songlayout

import (
	"fmt"

	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/song"
)

// MaxPageBudget is the largest page count the driver tries to meet before
// falling back to the nice layout.
const MaxPageBudget = 3

// Result is the layout chosen for one song. Generator has consumed exactly
// the pages of the result, so the next song can continue with it.
type Result struct {
	Pages     []*layout.Box
	Strategy  Strategy
	Generator layout.RectangleGenerator
}

// lazyLayout runs a strategy on its own generator clone at most once.
type lazyLayout struct {
	strategy Strategy
	run      func(layout.RectangleGenerator) ([]*layout.Box, error)
	gen      layout.RectangleGenerator

	done     bool
	pages    []*layout.Box
	err      error
	checked  bool
	overflow bool
}

func (l *lazyLayout) value() ([]*layout.Box, error) {
	if !l.done {
		l.pages, l.err = l.run(l.gen)
		l.done = true
	}
	return l.pages, l.err
}

func (l *lazyLayout) overflowing() (bool, error) {
	pages, err := l.value()
	if err != nil {
		return false, err
	}
	if !l.checked {
		for _, p := range pages {
			if layout.HasOverflow(p) {
				l.overflow = true
				break
			}
		}
		l.checked = true
	}
	return l.overflow, nil
}

func (l *lazyLayout) meetsPageLimit(limit int) (bool, error) {
	overflow, err := l.overflowing()
	if err != nil || overflow {
		return false, err
	}
	return len(l.pages) <= limit, nil
}

func (l *lazyLayout) result() Result {
	return Result{Pages: l.pages, Strategy: l.strategy, Generator: l.gen}
}

// layouts memoizes the strategies of one Paginate call.
type layouts struct {
	song  song.Song
	cfg   Config
	gen   layout.RectangleGenerator
	run   func(Strategy, layout.RectangleGenerator) ([]*layout.Box, error)
	cache map[Strategy]*lazyLayout
}

func newLayouts(s song.Song, cfg Config, gen layout.RectangleGenerator) *layouts {
	ls := &layouts{song: s, cfg: cfg, gen: gen, cache: map[Strategy]*lazyLayout{}}
	ls.run = ls.layOut
	return ls
}

func (ls *layouts) layOut(strategy Strategy, gen layout.RectangleGenerator) ([]*layout.Box, error) {
	switch strategy {
	case StrategySimple:
		return LayoutSimple(ls.song, ls.cfg, gen), nil
	case StrategyDoubleLine:
		return LayoutDoubleLine(ls.song, ls.cfg, gen), nil
	}
	return LayoutAdjustable(ls.song, ls.cfg, gen, strategy)
}

// get returns the lazy layout of strategy without running it.
func (ls *layouts) get(strategy Strategy) *lazyLayout {
	if l, ok := ls.cache[strategy]; ok {
		return l
	}
	l := &lazyLayout{strategy: strategy, gen: ls.gen.Clone()}
	l.run = func(gen layout.RectangleGenerator) ([]*layout.Box, error) {
		return ls.run(strategy, gen)
	}
	ls.cache[strategy] = l
	return l
}

// choose tries the page budgets in turn and falls back to the nice layout.
func (ls *layouts) choose() (Result, error) {
	logger := ls.cfg.logger().With("song", ls.song.Heading)
	for budget := 1; budget <= MaxPageBudget; budget++ {
		for _, strategy := range Strategies {
			l := ls.get(strategy)
			ok, err := l.meetsPageLimit(budget)
			if err != nil {
				return Result{}, fmt.Errorf("layout %q: %w", ls.song.Heading, err)
			}
			if ok {
				logger.Debug("layout chosen", "strategy", strategy, "pages", len(l.pages))
				return l.result(), nil
			}
		}
	}

	nice := ls.get(StrategyNice)
	if _, err := nice.value(); err != nil {
		return Result{}, fmt.Errorf("layout %q: %w", ls.song.Heading, err)
	}
	logger.Debug("no layout fits, giving up", "strategy", StrategyNice, "pages", len(nice.pages))
	return nice.result(), nil
}

// Paginate lays out s with the first strategy that fits into one page
// without overflow, then two pages, then three. When none does, the nice
// layout is returned as it is. Every strategy runs at most once and only
// when it is needed. gen is not advanced; use the returned generator to
// continue.
func Paginate(s song.Song, cfg Config, gen layout.RectangleGenerator) (Result, error) {
	return newLayouts(s, cfg, gen).choose()
}

// RenderSongs paginates the songs one after another on a shared page
// sequence and puts every page onto a root box of the given dimensions.
func RenderSongs(songs []song.Song, cfg Config, gen layout.RectangleGenerator, dims layout.Dimensions) ([]*layout.Box, error) {
	var roots []*layout.Box
	for _, s := range songs {
		res, err := Paginate(s, cfg, gen)
		if err != nil {
			return nil, err
		}
		gen = res.Generator
		for _, p := range res.Pages {
			root := layout.NewPage(dims)
			root.AppendChild(p)
			if cfg.Debug {
				markPage(root, p)
			}
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// markPage adds an outline of the type area and a numbered marker at the
// left-top corner of every box placed on it.
func markPage(root, content *layout.Box) {
	root.AppendChild(layout.NewPlainBox(content.Rectangle()))
	for _, c := range content.Children() {
		root.AppendChild(layout.NewDebugBox(c.Rectangle().Point(layout.Left, layout.Top)))
	}
}
