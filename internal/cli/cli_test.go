package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/lasbec/simplechords/config"
)

const cleanSheet = "# Die Gedanken sind frei\n" +
	"```\n" +
	"[Verse]\n" +
	"C         G        C\n" +
	"Die Gedanken sind frei,\n" +
	"G                 C\n" +
	"wer kann sie erraten?\n" +
	"```\n"

const sheetWithWarnings = "# Kein Schwein ruft mich an\n" +
	"```\n" +
	"[Zwischenspiel]\n" +
	"Xq    G\n" +
	"la la la\n" +
	"```\n"

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// run executes the command tree with args and returns the log output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	cmd := newRootCmd(&logs)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return logs.String(), out.String(), err
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level, "simplechords"))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLogFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   logFlags
		want    log.Level
		wantErr bool
	}{
		{"default", logFlags{}, log.InfoLevel, false},
		{"verbose", logFlags{verbose: true}, log.DebugLevel, false},
		{"quiet", logFlags{quiet: true}, log.WarnLevel, false},
		{"explicit level wins", logFlags{level: "error", verbose: true}, log.ErrorLevel, false},
		{"unknown level", logFlags{level: "loud"}, 0, true},
		{"verbose and quiet", logFlags{verbose: true, quiet: true}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.resolve()
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogsCarryCommandPath(t *testing.T) {
	clean := writeSheet(t, t.TempDir(), "clean.md", cleanSheet)
	logs, _, err := run(t, "check", clean)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(logs, "simplechords check") {
		t.Fatalf("logs lack the command prefix:\n%s", logs)
	}

	logs, _, err = run(t, "check", clean, "-q")
	if err != nil {
		t.Fatalf("check -q: %v", err)
	}
	if logs != "" {
		t.Fatalf("-q must hide info logs, got:\n%s", logs)
	}
	if _, _, err := run(t, "check", clean, "-q", "-v"); err == nil {
		t.Fatalf("-q together with -v must be rejected")
	}
}

func TestASTPath(t *testing.T) {
	tests := map[string]string{
		"song.md":             "song.AST.json",
		"dir.v2/song.chords":  "dir.v2/song.AST.json",
		"dir/song":            "dir/song.AST.json",
		"dir/die.gedanken.md": "dir/die.gedanken.AST.json",
	}
	for in, want := range tests {
		if got := astPath(filepath.FromSlash(in)); got != filepath.FromSlash(want) {
			t.Errorf("astPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Fatalf("expected the default logger without one in the context")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel, "")
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Fatalf("logger not found in context")
	}
}

func TestExpandInputsSortsNaturally(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"song 10.md", "song 2.md", "song 1.md", "notes.pdf"} {
		writeSheet(t, dir, name, cleanSheet)
	}
	single := writeSheet(t, t.TempDir(), "extra.chords", cleanSheet)

	got, err := expandInputs([]string{single, dir})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	want := []string{
		single,
		filepath.Join(dir, "song 1.md"),
		filepath.Join(dir, "song 2.md"),
		filepath.Join(dir, "song 10.md"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}

	if _, err := expandInputs([]string{t.TempDir()}); err == nil {
		t.Fatalf("expected an error for a directory without chord sheets")
	}
	if _, err := expandInputs([]string{filepath.Join(dir, "missing.md")}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	clean := writeSheet(t, dir, "clean.md", cleanSheet)
	warned := writeSheet(t, dir, "warned.md", sheetWithWarnings)

	if _, _, err := run(t, "check", clean, "--strict"); err != nil {
		t.Fatalf("check clean --strict: %v", err)
	}

	logs, _, err := run(t, "check", warned)
	if err != nil {
		t.Fatalf("check without --strict: %v", err)
	}
	for _, want := range []string{"Unknown section type", "invalid-chord", "warnings=2"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs lack %q:\n%s", want, logs)
		}
	}

	if _, _, err := run(t, "check", warned, "--strict"); err == nil {
		t.Fatalf("check --strict must fail on warnings")
	}
}

func TestCheckReportsParseErrors(t *testing.T) {
	bad := writeSheet(t, t.TempDir(), "bad.md", "# Song\n```\n[Verse]\nC\n")
	_, _, err := run(t, "check", bad)
	if err == nil || !strings.Contains(err.Error(), "bad.md:") {
		t.Fatalf("check error = %v, want a parse error naming the file", err)
	}
}

func TestRenderSingleBook(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "1.md", cleanSheet)
	writeSheet(t, dir, "2.md", sheetWithWarnings)
	out := filepath.Join(dir, "out", "book.pdf")

	if _, _, err := run(t, "render", dir, "-o", out, "--debug"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	for _, dump := range []string{
		filepath.Join(dir, "1.AST.json"),
		filepath.Join(dir, "out", "book.layout.json"),
		filepath.Join(dir, "out", "book.boxes.json"),
	} {
		if _, err := os.Stat(dump); err != nil {
			t.Errorf("debug dump missing: %v", err)
		}
	}
}

func TestRenderOnePDFPerSong(t *testing.T) {
	dir := t.TempDir()
	a := writeSheet(t, dir, "a.md", cleanSheet)
	b := writeSheet(t, dir, "b.md", sheetWithWarnings)
	out := filepath.Join(dir, "pdf", "ignored.pdf")

	if _, _, err := run(t, "render", a, b, "-o", out, "--single=false"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"die-gedanken-sind-frei.pdf", "kein-schwein-ruft-mich-an.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, "pdf", name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("%s must not be written without --single", out)
	}
}

func TestRenderStrictStopsOnWarnings(t *testing.T) {
	dir := t.TempDir()
	b := writeSheet(t, dir, "b.md", sheetWithWarnings)
	out := filepath.Join(dir, "b.pdf")
	if _, _, err := run(t, "render", b, "-o", out, "--strict"); err == nil {
		t.Fatalf("render --strict must fail on warnings")
	}
	if _, err := os.Stat(out); err == nil {
		t.Fatalf("no PDF may be written when --strict fails")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.toml")

	if _, _, err := run(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, config.DefaultTOML) {
		t.Fatalf("config init did not write the default file")
	}
	if _, _, err := run(t, "config", "init", path); err == nil {
		t.Fatalf("config init must not overwrite without --force")
	}
	if _, _, err := run(t, "config", "init", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	yamlPath := filepath.Join(dir, "book.yaml")
	if _, _, err := run(t, "config", "init", yamlPath); err != nil {
		t.Fatalf("config init yaml: %v", err)
	}
	if _, err := config.Load(yamlPath); err != nil {
		t.Fatalf("written yaml does not load: %v", err)
	}

	_, out, err := run(t, "config", "show", "-c", path, "-f", "yaml")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "first_page: right") {
		t.Fatalf("config show output:\n%s", out)
	}
}
