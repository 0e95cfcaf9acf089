package components

import (
	"strings"
	"testing"

	"gstbrowse/internal/catalog"
)

func TestNewDetailView(t *testing.T) {
	view := NewDetailView()

	if view == nil {
		t.Fatal("NewDetailView should return a DetailView")
	}
	if view.Name != "" {
		t.Error("New view should have no selection")
	}
}

func TestDetailView_SetSize(t *testing.T) {
	view := NewDetailView()

	view.SetSize(100, 40)
	if view.Width != 100 || view.Height != 40 {
		t.Errorf("Size not stored: %dx%d", view.Width, view.Height)
	}

	// Tiny sizes must not go negative
	view.SetSize(5, 2)
	if view.Width != 5 {
		t.Errorf("Width not stored: %d", view.Width)
	}
}

func TestDetailView_SetContent(t *testing.T) {
	view := NewDetailView()
	view.SetSize(80, 24)

	view.SetContent("filesrc", catalog.KindElement, "Factory Details:\n  Rank  primary\n")

	if view.Name != "filesrc" {
		t.Errorf("Expected name filesrc, got %s", view.Name)
	}
	if view.Kind != catalog.KindElement {
		t.Errorf("Expected element kind, got %v", view.Kind)
	}

	rendered := view.View()
	if !strings.Contains(rendered, "filesrc") {
		t.Error("View should contain the entry name")
	}
	if !strings.Contains(rendered, "element") {
		t.Error("View should show the entry kind")
	}
}

func TestDetailView_Clear(t *testing.T) {
	view := NewDetailView()
	view.SetContent("filesrc", catalog.KindElement, "report")

	view.Clear()

	if view.Name != "" {
		t.Error("Clear should drop the selection")
	}
	if !strings.Contains(view.View(), "Select an entry") {
		t.Error("Cleared view should show the placeholder")
	}
}

func TestDetailView_PlaceholderBeforeSelection(t *testing.T) {
	view := NewDetailView()
	view.SetSize(80, 24)

	if !strings.Contains(view.View(), "Select an entry") {
		t.Error("View without selection should show the placeholder")
	}
}
