package binding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterpolate(t *testing.T) {
	data := Vars{
		"page":  3,
		"pages": 12,
		"song":  map[string]any{"title": "Wellerman", "keys": []string{"Am", "C"}},
		"list":  []any{"a", Vars{"b": "deep"}},
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no placeholders", "no placeholders"},
		{"number", "${page}", "3"},
		{"two", "${page} / ${pages}", "3 / 12"},
		{"spaces", "${ page }", "3"},
		{"nested", "${song.title}", "Wellerman"},
		{"string slice", "${song.keys[1]}", "C"},
		{"array then map", "${list[1].b}", "deep"},
		{"missing stays", "${nope}", "${nope}"},
		{"out of range stays", "${list[5]}", "${list[5]}"},
		{"bad index stays", "${list[x]}", "${list[x]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.in, data); got != tt.want {
				t.Fatalf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${page}", nil); got != "${page}" {
		t.Fatalf("got %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("- ${page} of ${ pages } ${song.keys[0]} -")
	if diff := cmp.Diff([]string{"page", "pages", "song.keys[0]"}, got); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	if err := Check("${page}/${pages}", "page", "pages"); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if err := Check("${pgae}", "page", "pages"); err == nil {
		t.Fatalf("a misspelt placeholder must be rejected")
	}
	if err := Check("static text", "page"); err != nil {
		t.Fatalf("Check without placeholders: %v", err)
	}
}

func TestCheckRejectsMalformedPaths(t *testing.T) {
	for _, tmpl := range []string{"${[0]}", "${page..x}", "${page[}"} {
		if err := Check(tmpl, "page"); err == nil {
			t.Errorf("Check(%q) accepted a malformed path", tmpl)
		}
	}
}
