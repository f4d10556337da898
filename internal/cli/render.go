package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lasbec/simplechords/config"
	"github.com/lasbec/simplechords/layout"
	canvasrenderer "github.com/lasbec/simplechords/renderer/canvas"
	"github.com/lasbec/simplechords/song"
	"github.com/lasbec/simplechords/songlayout"
)

const defaultOutput = "songbook.pdf"

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output string // PDF file, or a file in the output directory without --single
	config string // TOML or YAML layout configuration
	debug  bool   // draw box outlines, allow overflow and dump AST and layout JSON
	single bool   // all songs into one PDF
	strict bool   // checker warnings are errors
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{output: defaultOutput, single: true}
	cmd := &cobra.Command{
		Use:   "render [files or directories...]",
		Short: "Lay out chord sheets and write them as PDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PDF; without --single its directory receives one PDF per song")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "layout configuration (.toml, .yaml or .yml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "outline boxes, tolerate overflow and write AST and layout JSON files")
	cmd.Flags().BoolVar(&opts.single, "single", opts.single, "render all songs into one PDF")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat checker warnings as errors")
	return cmd
}

func runRender(ctx context.Context, args []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	start := time.Now()

	doc, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	sheets, err := loadSheets(ctx, paths, opts.debug)
	if err != nil {
		return err
	}
	if opts.strict {
		for _, s := range sheets {
			if err := song.Strict(s.warnings); err != nil {
				return fmt.Errorf("%s: %w", s.path, err)
			}
		}
	}

	baseDir := "."
	if opts.config != "" {
		baseDir = filepath.Dir(opts.config)
	}
	r := canvasrenderer.NewRenderer(baseDir)
	mode := layout.RenderProduction
	if opts.debug {
		mode = layout.RenderDebug
	}
	settings, err := config.Resolve(doc, r, mode, logger)
	if err != nil {
		return err
	}

	if opts.single {
		songs := make([]song.Song, 0, len(sheets))
		for _, s := range sheets {
			songs = append(songs, s.song)
		}
		if err := renderBook(ctx, songs, settings, r, opts.output, opts.debug); err != nil {
			return err
		}
		logger.Info("rendered songbook", "songs", len(songs), "output", opts.output, "took", since(start))
		return nil
	}

	dir := filepath.Dir(opts.output)
	used := map[string]int{}
	for _, s := range sheets {
		name := s.name()
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		out := filepath.Join(dir, name+".pdf")
		if err := renderBook(ctx, []song.Song{s.song}, settings, r, out, opts.debug); err != nil {
			return fmt.Errorf("%s: %w", s.path, err)
		}
		logger.Debug("rendered song", "input", s.path, "output", out)
	}
	logger.Info("rendered songs", "songs", len(sheets), "dir", dir, "took", since(start))
	return nil
}

// renderBook lays out songs on one page sequence and writes the PDF to out.
// Every call starts at the first page of the configured book.
func renderBook(ctx context.Context, songs []song.Song, settings config.Settings, r *canvasrenderer.Renderer, out string, debug bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	roots, err := songlayout.RenderSongs(songs, settings.Song, settings.Pages.Clone(), settings.Page)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(out, filepath.Ext(out))
	if debug {
		if err := layout.WriteBoxTreeJSON(roots, base+".boxes.json"); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := layout.Flatten(roots, settings.Flatten)
	if err != nil {
		return err
	}
	if debug {
		if err := layout.WriteDebugJSON(res, base+".layout.json"); err != nil {
			return err
		}
	}
	data, err := r.Render(res)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
