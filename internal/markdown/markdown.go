// Package markdown renders markdown text for terminal display. The CLI uses
// it for changelog output and todo descriptions.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/askern/tracker/internal/strings"
)

// renderer abstracts glamour so rendering failures can be contained.
type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output at the given width,
// indenting each line by indent spaces. Returns "" for blank input; falls
// back to the raw text if the renderer fails or panics.
func Render(width, indent int, input string) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if internalstrings.IsBlank(value) {
		return ""
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := value
	if formatted, ok := safeRender(renderWidth, value); ok {
		rendered = formatted
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if internalstrings.IsBlank(rendered) {
		return ""
	}
	return internalstrings.IndentBlock(rendered, indent)
}

func safeRender(width int, value string) (out string, ok bool) {
	r := markdownRenderer(width)
	if r == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return formatted, true
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

// StripHeading removes a leading markdown heading marker from a line.
func StripHeading(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
}
