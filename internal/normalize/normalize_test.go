package normalize

import (
	"strings"
	"testing"
)

func TestLines_DropsShortLines(t *testing.T) {
	short := "This line has exactly forty characters.." // 40 runes
	if len(short) != 40 {
		t.Fatalf("fixture length = %d", len(short))
	}
	long := strings.Repeat("word ", 25) + "end."
	raw := short + "\n" + long + "\n"
	got := Lines(raw, Options{})
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(got), got)
	}
	if strings.Contains(got[0], "forty") {
		t.Fatalf("short line leaked: %q", got[0])
	}
}

func TestLines_TrimsAndCollapsesBlankLines(t *testing.T) {
	raw := "\n\n   first line here.   \n\n\n\t second line here.\n   \n"
	got := Lines(raw, Options{MinLineLength: -1})
	want := []string{"first line here.", "second line here."}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLines_SplitsOnDoubleSpace(t *testing.T) {
	got := Lines("Menu item one.  Menu item two.", Options{MinLineLength: -1})
	if len(got) != 2 || got[0] != "Menu item one." || got[1] != "Menu item two." {
		t.Fatalf("unexpected split: %q", got)
	}
}

func TestLines_NFC(t *testing.T) {
	// "Cafe" with a combining acute accent becomes the precomposed form.
	got := Lines("Cafe\u0301 opened.", Options{MinLineLength: -1})
	if len(got) != 1 || got[0] != "Caf\u00e9 opened." {
		t.Fatalf("expected NFC output, got %q", got)
	}
}

func TestRepairSpacing(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"end.Next", "end. Next"},
		{"one.Two.Three", "one. Two. Three"},
		{"already. spaced", "already. spaced"},
		{"pi is 3.14 today", "pi is 3.14 today"},
		{"wait...what", "wait... what"},
		{"quoted.\"Next\"", "quoted.\"Next\""},
		{"trailing.", "trailing."},
		{"no periods", "no periods"},
	}
	for _, c := range cases {
		if got := RepairSpacing(c.in); got != c.want {
			t.Errorf("RepairSpacing(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func BenchmarkLines(b *testing.B) {
	line := strings.Repeat("The Colony of Ants.Moves along the Trail near Rome. ", 4)
	raw := strings.Repeat(line+"\n", 200)
	for i := 0; i < b.N; i++ {
		_ = Lines(raw, Options{})
	}
}
