// Package render draws Markdown in the terminal so converted content can be
// checked before a document is produced.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 80

// Markdown renders text to w. Style "" selects a style from the terminal
// background; "notty" produces plain output.
func Markdown(w io.Writer, text, style string, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(text)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
