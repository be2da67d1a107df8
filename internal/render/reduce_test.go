package render

import (
	"strings"
	"testing"
)

func TestReduceParagraphBoundaries(t *testing.T) {
	got := Reduce("<p>A</p><p>B</p>")

	idxA := strings.Index(got, "A")
	idxB := strings.Index(got, "B")
	if idxA < 0 || idxB < 0 {
		t.Fatalf("Reduce lost content: %q", got)
	}
	between := got[idxA+1 : idxB]
	if !strings.Contains(between, "\n") {
		t.Errorf("expected newline between paragraphs, got %q", got)
	}
	if strings.ContainsAny(got, "<>") {
		t.Errorf("tag delimiters leaked into output: %q", got)
	}
}

func TestReduceIgnoredTags(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string // substring that must be present
		absent string // substring that must not be present
	}{
		{
			name:   "style content dropped",
			markup: "<style>body { color: red }</style><p>visible</p>",
			want:   "visible",
			absent: "color",
		},
		{
			name:   "script content dropped",
			markup: "<script>alert(1)</script>hello",
			want:   "hello",
			absent: "alert",
		},
		{
			name:   "head register released by nested start tag",
			markup: "<head>hidden<title>shown</title></head>",
			want:   "shown",
			absent: "hidden",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.markup)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Reduce(%q) = %q, missing %q", tt.markup, got, tt.want)
			}
			if tt.absent != "" && strings.Contains(got, tt.absent) {
				t.Errorf("Reduce(%q) = %q, should not contain %q", tt.markup, got, tt.absent)
			}
		})
	}
}

func TestReduceInvisibleCharacters(t *testing.T) {
	got := Reduce("<p>a‍b‌c\ufeffd</p>")
	if !strings.Contains(got, "abcd") {
		t.Errorf("zero-width characters not stripped: %q", got)
	}

	got = Reduce("<p>a b</p>")
	if !strings.Contains(got, "a b") {
		t.Errorf("nbsp not converted to space: %q", got)
	}
}

func TestReduceWhitespaceCollapse(t *testing.T) {
	got := Reduce("<p>one   two\t\tthree</p>")
	if !strings.Contains(got, "one two three") {
		t.Errorf("interior whitespace not collapsed: %q", got)
	}
}

func TestReduceMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"<",
		"<p",
		"<p><b>unclosed",
		"</div></div>",
		"plain text, no tags at all",
		"<unknown-tag>kept</unknown-tag>",
	}
	for _, in := range inputs {
		got := Reduce(in) // must not panic
		if strings.ContainsAny(got, "<>") {
			t.Errorf("Reduce(%q) leaked delimiters: %q", in, got)
		}
	}

	if got := Reduce("<unknown-tag>kept</unknown-tag>"); !strings.Contains(got, "kept") {
		t.Errorf("unknown tag content dropped: %q", got)
	}
}

func TestReduceBreakTag(t *testing.T) {
	got := Reduce("one<br>two")
	if !strings.Contains(got, "\n") {
		t.Errorf("br did not emit a line break: %q", got)
	}
}
