// Package config loads the layout configuration of a songbook from TOML or
// YAML and turns it into the settings of the layout engine.
package config

import (
	_ "embed"
	"fmt"

	"go.uber.org/multierr"

	"github.com/lasbec/simplechords/binding"
	"github.com/lasbec/simplechords/layout"
)

// DefaultTOML is the commented default configuration written by `config init`.
//
//go:embed default.toml
var DefaultTOML []byte

type (
	// PageConfig sets the paper size and the margins of a bound book. The
	// inner margin is on the binding side.
	PageConfig struct {
		Width     string `toml:"width" yaml:"width"`
		Height    string `toml:"height" yaml:"height"`
		Top       string `toml:"top" yaml:"top"`
		Bottom    string `toml:"bottom" yaml:"bottom"`
		Inner     string `toml:"inner" yaml:"inner"`
		Outer     string `toml:"outer" yaml:"outer"`
		FirstPage string `toml:"first_page" yaml:"first_page"`
	}

	// FontConfig names a built-in font or a font file, and its size.
	FontConfig struct {
		Font string `toml:"font" yaml:"font"`
		Size string `toml:"size" yaml:"size"`
	}

	FontsConfig struct {
		Lyric      FontConfig `toml:"lyric" yaml:"lyric"`
		Refrain    FontConfig `toml:"refrain" yaml:"refrain"`
		Chorus     FontConfig `toml:"chorus" yaml:"chorus"`
		Title      FontConfig `toml:"title" yaml:"title"`
		Chords     FontConfig `toml:"chords" yaml:"chords"`
		PageNumber FontConfig `toml:"page_number" yaml:"page_number"`
	}

	PageNumbersConfig struct {
		Enabled bool `toml:"enabled" yaml:"enabled"`
		// Template may use ${page} and ${pages}.
		Template string `toml:"template" yaml:"template"`
		First    int    `toml:"first" yaml:"first"`
		Bottom   string `toml:"bottom" yaml:"bottom"`
	}

	MetaConfig struct {
		Title    string   `toml:"title" yaml:"title"`
		Author   string   `toml:"author" yaml:"author"`
		Subject  string   `toml:"subject" yaml:"subject"`
		Keywords []string `toml:"keywords" yaml:"keywords"`
	}

	// Document is the configuration file as written by the user. Lengths
	// are strings like "12pt" or "148.5mm".
	Document struct {
		Page            PageConfig        `toml:"page" yaml:"page"`
		SectionDistance string            `toml:"section_distance" yaml:"section_distance"`
		Fonts           FontsConfig       `toml:"fonts" yaml:"fonts"`
		PageNumbers     PageNumbersConfig `toml:"page_numbers" yaml:"page_numbers"`
		Meta            MetaConfig        `toml:"meta" yaml:"meta"`
	}
)

// Default returns the configuration used without a config file: an A5
// sized half page with room for binding.
func Default() Document {
	return Document{
		Page: PageConfig{
			Width:     "148.5mm",
			Height:    "210mm",
			Top:       "5mm",
			Bottom:    "5mm",
			Inner:     "20mm",
			Outer:     "5mm",
			FirstPage: string(layout.PageRight),
		},
		SectionDistance: "12pt",
		Fonts: FontsConfig{
			Lyric:      FontConfig{Font: "go-regular", Size: "11pt"},
			Refrain:    FontConfig{Font: "go-bold", Size: "11pt"},
			Chorus:     FontConfig{Font: "go-italic", Size: "11pt"},
			Title:      FontConfig{Font: "go-bold-italic", Size: "13pt"},
			Chords:     FontConfig{Font: "go-bold-italic", Size: "9pt"},
			PageNumber: FontConfig{Font: "go-regular", Size: "9pt"},
		},
		PageNumbers: PageNumbersConfig{
			Enabled:  true,
			Template: "${page}",
			First:    1,
			Bottom:   "3mm",
		},
		Meta: MetaConfig{Title: "Songbook"},
	}
}

// PagePlaceholders are the names a page number template may use.
var PagePlaceholders = []string{"page", "pages"}

// Validate reports every invalid setting at once.
func (d Document) Validate() error {
	var errs error
	length := func(field, value string, positive bool) layout.Length {
		l, err := layout.ParseLength(value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", field, err))
			return layout.Zero
		}
		if l.Ltz() || (positive && l.IsZero()) {
			errs = multierr.Append(errs, fmt.Errorf("%s: %s is not a usable length", field, value))
		}
		return l
	}

	width := length("page.width", d.Page.Width, true)
	height := length("page.height", d.Page.Height, true)
	top := length("page.top", d.Page.Top, false)
	bottom := length("page.bottom", d.Page.Bottom, false)
	inner := length("page.inner", d.Page.Inner, false)
	outer := length("page.outer", d.Page.Outer, false)
	if width.Gtz() && !inner.Add(outer).Lt(width) {
		errs = multierr.Append(errs, fmt.Errorf("page: inner and outer margins leave no room on a %s wide page", width))
	}
	if height.Gtz() && !top.Add(bottom).Lt(height) {
		errs = multierr.Append(errs, fmt.Errorf("page: top and bottom margins leave no room on a %s high page", height))
	}
	if _, err := layout.ParsePageSide(d.Page.FirstPage); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("page.first_page: %w", err))
	}

	length("section_distance", d.SectionDistance, false)

	for _, f := range d.Fonts.named() {
		if f.cfg.Font == "" {
			errs = multierr.Append(errs, fmt.Errorf("fonts.%s.font: missing", f.name))
		}
		length("fonts."+f.name+".size", f.cfg.Size, true)
	}

	if d.PageNumbers.Enabled {
		if err := binding.Check(d.PageNumbers.Template, PagePlaceholders...); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("page_numbers.template: %w", err))
		}
		length("page_numbers.bottom", d.PageNumbers.Bottom, false)
	}
	return errs
}

type namedFont struct {
	name string
	cfg  FontConfig
}

func (f FontsConfig) named() []namedFont {
	return []namedFont{
		{"lyric", f.Lyric},
		{"refrain", f.Refrain},
		{"chorus", f.Chorus},
		{"title", f.Title},
		{"chords", f.Chords},
		{"page_number", f.PageNumber},
	}
}
