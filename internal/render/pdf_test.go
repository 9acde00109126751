package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("Ölwechsel für Škoda ", 5)
	got := truncate(long, 60)

	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 60 {
		t.Fatalf("truncate returned %d runes, want at most 60", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated string missing ellipsis: %q", got)
	}

	short := "Brake pad set"
	if truncate(short, 60) != short {
		t.Fatalf("short string was altered: %q", truncate(short, 60))
	}
}
