package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/lasbec/simplechords/layout"
	"github.com/lasbec/simplechords/renderer"
	"github.com/lasbec/simplechords/songlayout"
)

// Settings is a validated document turned into engine values.
type Settings struct {
	Song    songlayout.Config
	Page    layout.Dimensions
	Pages   *layout.BookPageGenerator
	Flatten layout.FlattenOptions
}

// Resolve measures the configured fonts with styles and builds the engine
// settings. mode and logger go into the flatten options.
func Resolve(doc Document, styles renderer.StyleProvider, mode layout.RenderMode, logger *log.Logger) (Settings, error) {
	if err := doc.Validate(); err != nil {
		return Settings{}, err
	}
	if logger == nil {
		logger = log.Default()
	}

	var errs error
	style := func(name string, f FontConfig) layout.TextStyle {
		s, err := styles.Style(f.Font, layout.MustParseLength(f.Size))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("fonts.%s: %w", name, err))
		}
		return s
	}
	fc := doc.Fonts
	cfg := songlayout.Config{
		Lyric:           style("lyric", fc.Lyric),
		Refrain:         style("refrain", fc.Refrain),
		Chorus:          style("chorus", fc.Chorus),
		Title:           style("title", fc.Title),
		Chords:          style("chords", fc.Chords),
		SectionDistance: layout.MustParseLength(doc.SectionDistance),
		Debug:           mode == layout.RenderDebug,
		Logger:          logger,
	}
	var numbering *layout.PageNumbering
	if doc.PageNumbers.Enabled {
		numbering = &layout.PageNumbering{
			Template:  doc.PageNumbers.Template,
			Style:     style("page_number", fc.PageNumber),
			First:     doc.PageNumbers.First,
			Bottom:    layout.MustParseLength(doc.PageNumbers.Bottom),
			Margin:    layout.MustParseLength(doc.Page.Outer),
			FirstPage: layout.PageSide(doc.Page.FirstPage),
		}
	}
	if errs != nil {
		return Settings{}, errs
	}

	p := doc.Page
	dims := layout.Dimensions{Width: layout.MustParseLength(p.Width), Height: layout.MustParseLength(p.Height)}
	return Settings{
		Song: cfg,
		Page: dims,
		Pages: &layout.BookPageGenerator{
			Width:     dims.Width,
			Height:    dims.Height,
			Top:       layout.MustParseLength(p.Top),
			Bottom:    layout.MustParseLength(p.Bottom),
			Inner:     layout.MustParseLength(p.Inner),
			Outer:     layout.MustParseLength(p.Outer),
			FirstPage: layout.PageSide(p.FirstPage),
		},
		Flatten: layout.FlattenOptions{
			Mode:        mode,
			Logger:      logger,
			PageNumbers: numbering,
			Meta: layout.DocumentMeta{
				Title:    doc.Meta.Title,
				Author:   doc.Meta.Author,
				Subject:  doc.Meta.Subject,
				Creator:  "simplechords",
				Keywords: doc.Meta.Keywords,
			},
		},
	}, nil
}
