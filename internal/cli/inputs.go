package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"

	"github.com/lasbec/simplechords/dsl"
	"github.com/lasbec/simplechords/song"
)

// sheetExtensions are the file types picked up from a directory argument.
var sheetExtensions = map[string]bool{".md": true, ".chords": true, ".txt": true}

// expandInputs replaces directory arguments by the chord sheets inside them,
// in natural order so that "song 2" comes before "song 10".
func expandInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && sheetExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				names = append(names, e.Name())
			}
		}
		sort.Sort(natural.StringSlice(names))
		for _, n := range names {
			files = append(files, filepath.Join(arg, n))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no chord sheets found in %s", strings.Join(args, ", "))
	}
	return files, nil
}

// sheet is one parsed and checked input file.
type sheet struct {
	path     string
	song     song.Song
	warnings []song.Warning
}

// name is a file name stem for the song: its heading, or the input file name
// when the heading is empty.
func (s sheet) name() string {
	if n := slug.Make(s.song.Heading); n != "" {
		return n
	}
	return slug.Make(strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path)))
}

// loadSheets parses and checks every file. Warnings are logged; parse errors
// stop the run. With dumpAST the syntax tree of each file is written to
// the file name with its extension replaced by AST.json.
func loadSheets(ctx context.Context, paths []string, dumpAST bool) ([]sheet, error) {
	logger := loggerFromContext(ctx)
	res := make([]sheet, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := loadSheet(path, dumpAST)
		if err != nil {
			return nil, err
		}
		logWarnings(logger, s)
		res = append(res, s)
	}
	return res, nil
}

func loadSheet(path string, dumpAST bool) (sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return sheet{}, err
	}
	defer f.Close()
	ast, err := dsl.Parse(f)
	if err != nil {
		return sheet{}, fmt.Errorf("%s:%w", path, err)
	}
	if dumpAST {
		if err := writeJSON(astPath(path), ast); err != nil {
			return sheet{}, err
		}
	}
	s := song.FromAST(ast)
	return sheet{path: path, song: s, warnings: song.Check(s)}, nil
}

// astPath maps song.md to song.AST.json.
func astPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".AST.json"
}

func logWarnings(logger *log.Logger, s sheet) {
	for _, w := range s.warnings {
		keyvals := []any{"file", s.path, "kind", w.Kind, "section", w.Section + 1}
		if w.Line >= 0 {
			keyvals = append(keyvals, "line", w.Line+1)
		}
		logger.Warn(w.Message, keyvals...)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
