package markdown

import "testing"

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := Render(renderWidth, 0, "hello\n")
	if out != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", out)
	}
}

func TestRender_BlankInput(t *testing.T) {
	if out := Render(80, 0, "  \n\t"); out != "" {
		t.Fatalf("expected empty output for blank input, got %q", out)
	}
}

func TestStripHeading(t *testing.T) {
	if got := StripHeading("## [1.0.0] - 2026-08-25"); got != "[1.0.0] - 2026-08-25" {
		t.Fatalf("unexpected heading strip: %q", got)
	}
	if got := StripHeading("plain"); got != "plain" {
		t.Fatalf("unexpected strip of plain line: %q", got)
	}
}
