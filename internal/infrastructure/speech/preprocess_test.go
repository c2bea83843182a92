package speech

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreprocessTextLimitsSentences(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six."

	got := preprocessText(text)
	want := "One. Two. Three. Four."
	if got != want {
		t.Errorf("preprocessText() = %q, want %q", got, want)
	}
}

func TestPreprocessTextShortInputUnchanged(t *testing.T) {
	text := "Just one sentence."

	if got := preprocessText(text); got != text {
		t.Errorf("preprocessText() = %q, want %q", got, text)
	}
}

func TestPreprocessTextTruncatesLongText(t *testing.T) {
	text := strings.Repeat("a", 600) + "."

	got := preprocessText(text)
	if len(got) != 500 {
		t.Errorf("expected 500 characters, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}
}

func TestPreprocessTextTruncatesMultibyteOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("ü", 600) + "."

	got := preprocessText(text)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got[:20])
	}
	if n := utf8.RuneCountInString(got); n != 500 {
		t.Errorf("expected 500 runes, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-12:])
	}
}

func TestPreprocessTextMixedPunctuation(t *testing.T) {
	text := "Really?! Yes. Definitely! Sure thing. Extra."

	got := preprocessText(text)
	want := "Really?! Yes. Definitely! Sure thing."
	if got != want {
		t.Errorf("preprocessText() = %q, want %q", got, want)
	}
}

func TestPreprocessTextNoTerminalPunctuation(t *testing.T) {
	text := "no punctuation at all"

	if got := preprocessText(text); got != text {
		t.Errorf("preprocessText() = %q, want %q", got, text)
	}
}
