package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultRenderWidth is the word-wrap width used when none is given.
const DefaultRenderWidth = 80

// Render styles a Markdown document for the terminal. style is a glamour
// standard style name ("dark", "light", "notty", "ascii"); an empty style
// selects one from the terminal background.
func Render(markdown string, width int, style string) (string, error) {
	if width <= 0 {
		width = DefaultRenderWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
