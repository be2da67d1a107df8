package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"
)

func TestReflowWidthBound(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"a somewhat longer line with several words to wrap around",
		"averyveryverylongtokenwithoutanyspacesatallthatmustbehardbroken",
		"mixed averyverylongtoken and normal words",
		"line one\nline two\n\nline four",
	}
	for _, in := range inputs {
		for _, w := range []int{1, 2, 5, 10, 40, 200} {
			for _, line := range Reflow(in, w) {
				if got := runewidth.StringWidth(line); got > w {
					t.Errorf("Reflow(%q, %d) produced line %q of width %d", in, w, line, got)
				}
			}
		}
	}
}

func TestReflowNoDoubleBlanks(t *testing.T) {
	in := "first\n\n\n\nsecond\n\nthird"
	lines := Reflow(in, 80)
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" && lines[i-1] == "" {
			t.Fatalf("consecutive blank lines at %d: %v", i, lines)
		}
	}
	want := []string{"first", "", "second", "", "third"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Reflow mismatch (-want +got):\n%s", diff)
	}
}

func TestReflowEmpty(t *testing.T) {
	if got := Reflow("", 80); len(got) != 0 {
		t.Errorf("Reflow(\"\") = %v, want empty", got)
	}
	if got := Reflow("\n\n\n", 80); len(got) != 0 {
		t.Errorf("Reflow of only blanks = %v, want empty", got)
	}
}

func TestReflowDropsLeadingBlanks(t *testing.T) {
	lines := Reflow("\n\n\nbody", 80)
	want := []string{"body"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("leading blanks not dropped (-want +got):\n%s", diff)
	}
}

func TestReflowWordWrap(t *testing.T) {
	lines := Reflow("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestReflowHardBreak(t *testing.T) {
	lines := Reflow("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("hard break mismatch (-want +got):\n%s", diff)
	}
}

func TestReflowTrimsRawLines(t *testing.T) {
	lines := Reflow("   padded   ", 80)
	want := []string{"padded"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("trim mismatch (-want +got):\n%s", diff)
	}
}

func TestReflowCJKWidth(t *testing.T) {
	// Each CJK rune occupies two cells; four runes cannot fit on a
	// six-cell line.
	lines := Reflow("你好世界", 6)
	if len(lines) < 2 {
		t.Fatalf("expected CJK wrap, got %v", lines)
	}
	for _, line := range lines {
		if runewidth.StringWidth(line) > 6 {
			t.Errorf("line %q exceeds 6 cells", line)
		}
	}
	if joined := strings.Join(lines, ""); joined != "你好世界" {
		t.Errorf("content lost in wrap: %q", joined)
	}
}
