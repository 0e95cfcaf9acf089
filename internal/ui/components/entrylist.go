package components

import (
	"fmt"
	"strings"

	"gstbrowse/internal/catalog"
	"gstbrowse/internal/ui"
)

// EntryList is a cursor-based list over catalog entries. Filtering
// happens outside; the list only renders what it is given.
type EntryList struct {
	Entries []catalog.Entry
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string
}

// NewEntryList creates a new entry list
func NewEntryList() *EntryList {
	return &EntryList{
		Width:   40,
		Height:  20,
		Focused: true,
		Title:   "Catalog",
	}
}

// SetEntries replaces the list contents and clamps the cursor.
func (l *EntryList) SetEntries(entries []catalog.Entry) {
	l.Entries = entries
	if l.Cursor >= len(entries) {
		l.Cursor = max(0, len(entries)-1)
	}
}

// MoveUp moves cursor up
func (l *EntryList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *EntryList) MoveDown() {
	if l.Cursor < len(l.Entries)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *EntryList) PageUp() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor -= pageSize
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *EntryList) PageDown() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor += pageSize
	if l.Cursor >= len(l.Entries) {
		l.Cursor = max(0, len(l.Entries)-1)
	}
}

// GoToFirst moves cursor to the first item
func (l *EntryList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *EntryList) GoToLast() {
	if len(l.Entries) > 0 {
		l.Cursor = len(l.Entries) - 1
	}
}

// Current returns the entry under the cursor.
func (l *EntryList) Current() (catalog.Entry, bool) {
	if len(l.Entries) > 0 && l.Cursor < len(l.Entries) {
		return l.Entries[l.Cursor], true
	}
	return catalog.Entry{}, false
}

// StatusLine renders the item count the way the status label shows it:
// just the total until a search narrows the list down.
func StatusLine(visible, total int, searching bool) string {
	if !searching {
		return fmt.Sprintf("%d items", total)
	}
	return fmt.Sprintf("%d of %d items shown", visible, total)
}

// View renders the entry list
func (l *EntryList) View() string {
	var b strings.Builder

	title := l.Title
	if len(l.Entries) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Entries))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, l.Width-2))))
	b.WriteString("\n")

	if len(l.Entries) == 0 {
		b.WriteString(ui.ItemStyle.Render("No entries"))
		return l.wrapInPanel(b.String())
	}

	// Calculate visible range
	visibleHeight := l.Height - 3 // Minus title and divider
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Entries))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(l.Entries[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.Entries) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	// Position indicator when scrolling
	if len(l.Entries) > visibleHeight {
		position := fmt.Sprintf(" %d/%d ", l.Cursor+1, len(l.Entries))
		b.WriteString("\n")
		pad := (l.Width - len(position) - 4) / 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(ui.MutedStyle.Render(strings.Repeat(" ", pad) + position))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single entry with its kind badge
func (l *EntryList) renderItem(e catalog.Entry, isCursor bool) string {
	badge := kindBadge(e.Kind)

	name := e.Name
	maxNameLen := l.Width - 12
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	// Truncate on runes; type-finder names can carry multi-byte characters.
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen-3]) + "..."
	}

	content := fmt.Sprintf("%s %s", badge, name)

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(1, l.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// kindBadge returns a short colored tag for an entry kind
func kindBadge(k catalog.Kind) string {
	switch k {
	case catalog.KindPlugin:
		return ui.PluginBadgeStyle.Render("[plg]")
	case catalog.KindElement:
		return ui.ElementBadgeStyle.Render("[elm]")
	case catalog.KindTypeFinder:
		return ui.TypeFinderBadgeStyle.Render("[typ]")
	default:
		return ui.MutedStyle.Render("[   ]")
	}
}

// wrapInPanel wraps content in a panel border
func (l *EntryList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
