package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one selectable row for display: a plugin, an element or a
// type-finder, flattened out of the catalog.
type Entry struct {
	Name        string
	Description string
	Kind        Kind
}

// FilterKind selects which entry kinds to show.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterPlugins
	FilterElements
	FilterTypeFinders
)

// String returns the display name of the filter
func (f FilterKind) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterPlugins:
		return "Plugins"
	case FilterElements:
		return "Elements"
	case FilterTypeFinders:
		return "Types"
	default:
		return "All"
	}
}

// Next cycles to the following filter kind, wrapping around.
func (f FilterKind) Next() FilterKind {
	switch f {
	case FilterAll:
		return FilterPlugins
	case FilterPlugins:
		return FilterElements
	case FilterElements:
		return FilterTypeFinders
	default:
		return FilterAll
	}
}

// ParseFilterKind maps a config or flag string to a FilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "plugins", "plugin":
		return FilterPlugins, nil
	case "elements", "element":
		return FilterElements, nil
	case "typefinders", "typefinder", "types", "type":
		return FilterTypeFinders, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter kind %q", s)
	}
}

// Matches reports whether an entry of the given kind passes the filter.
func (f FilterKind) Matches(k Kind) bool {
	switch f {
	case FilterAll:
		return true
	case FilterPlugins:
		return k == KindPlugin
	case FilterElements:
		return k == KindElement
	case FilterTypeFinders:
		return k == KindTypeFinder
	default:
		return false
	}
}

// Entries flattens the catalog into display entries sorted by name.
// Plugins appear alongside their features as first-class entries.
func Entries(c *Catalog) []Entry {
	entries := make([]Entry, 0, len(c.Plugins)+len(c.Features))
	for name := range c.Plugins {
		entries = append(entries, Entry{Name: name, Kind: KindPlugin})
	}
	for _, f := range c.Features {
		entries = append(entries, Entry{
			Name:        f.FeatureName,
			Description: f.Description,
			Kind:        f.Kind,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// FilterEntries returns the entries matching both the kind filter and a
// case-insensitive substring search on the entry name. total counts
// entries matching the kind filter alone; visible counts entries
// matching kind and search. An empty search matches everything.
func FilterEntries(entries []Entry, kind FilterKind, search string) (matched []Entry, visible, total int) {
	needle := strings.ToLower(search)
	for _, e := range entries {
		if !kind.Matches(e.Kind) {
			continue
		}
		total++
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, len(matched), total
}
