package ui

import "github.com/charmbracelet/glamour"

// RenderMarkdown renders markdown for terminal display, wrapped to width.
// On renderer failure the raw text comes back unstyled rather than lost.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
