package components

import (
	"fmt"
	"strings"

	"gstbrowse/internal/catalog"
	"gstbrowse/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailView shows the gst-inspect report for the selected entry in a
// scrollable viewport. The report text is opaque; it is displayed
// verbatim apart from display-only colorizing.
type DetailView struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	// Selected entry info
	Name string
	Kind catalog.Kind

	// Dimensions
	Width  int
	Height int

	Focused bool

	lineCount   int
	headerStyle lipgloss.Style
	infoStyle   lipgloss.Style
}

// NewDetailView creates a new detail view with viewport
func NewDetailView() *DetailView {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &DetailView{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       80,
		Height:      20,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.Secondary),
		infoStyle: ui.MutedStyle,
	}
}

// SetSize updates the viewport dimensions
func (d *DetailView) SetSize(width, height int) {
	d.Width = width
	d.Height = height

	// Account for header and border
	contentHeight := height - 4
	if contentHeight < 3 {
		contentHeight = 3
	}
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	d.viewport.Width = contentWidth
	d.viewport.Height = contentHeight
}

// SetContent loads a report into the viewport and scrolls to the top.
func (d *DetailView) SetContent(name string, kind catalog.Kind, text string) {
	d.Name = name
	d.Kind = kind
	d.lineCount = strings.Count(text, "\n")
	d.viewport.SetContent(d.highlighter.HighlightReport(text))
	d.viewport.GotoTop()
}

// Clear empties the pane.
func (d *DetailView) Clear() {
	d.Name = ""
	d.lineCount = 0
	d.viewport.SetContent("")
	d.viewport.GotoTop()
}

// Update forwards scroll events to the viewport
func (d *DetailView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// ScrollPercent returns the viewport scroll position as 0-100
func (d *DetailView) ScrollPercent() int {
	return int(d.viewport.ScrollPercent() * 100)
}

// View renders the detail pane
func (d *DetailView) View() string {
	var b strings.Builder

	if d.Name == "" {
		b.WriteString(ui.PanelTitleStyle.Render("Details"))
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("Select an entry to inspect it"))
		return d.wrapInPanel(b.String())
	}

	header := d.headerStyle.Render(d.Name) + " " + d.infoStyle.Render("("+d.Kind.String()+")")
	scroll := d.infoStyle.Render(fmt.Sprintf("%d lines · %d%%", d.lineCount, d.ScrollPercent()))

	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, d.Width-4))))
	b.WriteString("\n")
	b.WriteString(d.viewport.View())
	b.WriteString("\n")
	b.WriteString(scroll)

	return d.wrapInPanel(b.String())
}

// wrapInPanel wraps content in a panel border
func (d *DetailView) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if d.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(d.Width).Height(d.Height).Render(content)
}
