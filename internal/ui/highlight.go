package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colorizes gst-inspect report text for display. The
// report is indented "Key: value" blocks, close enough to YAML for
// chroma's lexer; the underlying text is never modified, only wrapped
// in terminal styles.
type Highlighter struct {
	style *chroma.Style
	lexer chroma.Lexer
}

// NewHighlighter creates a new report highlighter
func NewHighlighter() *Highlighter {
	return &Highlighter{
		style: styles.Get("catppuccin-mocha"),
		lexer: lexers.Get("yaml"),
	}
}

// HighlightReport colorizes a full report. Anything the lexer cannot
// tokenise is returned unchanged.
func (h *Highlighter) HighlightReport(text string) string {
	if h.lexer == nil {
		return text
	}

	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var result strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := h.style.Get(token.Type)

		if entry.Colour.IsSet() {
			styled := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Colour.String()))
			if entry.Bold == chroma.Yes {
				styled = styled.Bold(true)
			}
			if entry.Italic == chroma.Yes {
				styled = styled.Italic(true)
			}
			result.WriteString(styled.Render(token.Value))
		} else {
			result.WriteString(token.Value)
		}
	}

	return result.String()
}
