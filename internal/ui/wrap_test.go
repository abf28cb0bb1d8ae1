package ui

import (
	"strings"
	"testing"
)

func TestReflowParagraphs(t *testing.T) {
	input := "one  two   three\n\nsecond paragraph"

	got := ReflowParagraphs(input, 80)

	if got != "one two three\n\nsecond paragraph" {
		t.Fatalf("expected normalized paragraphs, got %q", got)
	}
}

func TestReflowParagraphsWraps(t *testing.T) {
	input := strings.Repeat("word ", 20)

	got := ReflowParagraphs(input, 30)

	for _, line := range strings.Split(got, "\n") {
		if len(line) > 30 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestReflowParagraphsEmpty(t *testing.T) {
	if got := ReflowParagraphs("  \n\t ", 80); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
