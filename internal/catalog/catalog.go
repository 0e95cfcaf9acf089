// Package catalog parses the summary listing produced by gst-inspect-1.0
// into a queryable catalog of plugins and the features they provide.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a catalog entry.
type Kind int

const (
	// KindPlugin is a loadable module that owns one or more features.
	KindPlugin Kind = iota
	// KindElement is a feature usable as a processing node.
	KindElement
	// KindTypeFinder is a content-type detection feature; its name
	// contains a '/' (a MIME-type-like pattern).
	KindTypeFinder
	// KindExcluded marks factory kinds that are not browsable
	// (device providers, dynamic types, tracers).
	KindExcluded
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindPlugin:
		return "plugin"
	case KindElement:
		return "element"
	case KindTypeFinder:
		return "typefinder"
	case KindExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// excludedFactories appear in the listing but are not elements or
// type-finders; they contribute their plugin name and nothing else.
var excludedFactories = []string{
	"GstDeviceProviderFactory",
	"GstDynamicTypeFactory",
	"GstTracerFactory",
}

// summaryMarker identifies the trailing "Total count: N plugins, M features" line.
const summaryMarker = "Total count:"

// Feature is one row of the summary listing: a named capability
// contributed by a plugin.
type Feature struct {
	PluginName  string
	FeatureName string
	Description string
	Kind        Kind
}

// DuplicatePolicy decides which entry survives when two listing lines
// yield the same feature name.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the later line, matching the reference tool.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateFirstWins keeps the earlier line.
	DuplicateFirstWins
)

// ParseDuplicatePolicy maps a config string to a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-wins", "last":
		return DuplicateLastWins, nil
	case "first-wins", "first":
		return DuplicateFirstWins, nil
	default:
		return DuplicateLastWins, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// DiagnosticKind identifies a data-quality issue found while parsing.
type DiagnosticKind int

const (
	// DiagDuplicateFeature means two lines yielded the same feature name.
	DiagDuplicateFeature DiagnosticKind = iota
	// DiagMalformedLine means a line had fewer than two colon fields.
	DiagMalformedLine
)

// Diagnostic is a non-fatal issue recorded during a build. The build
// never fails because of one.
type Diagnostic struct {
	Kind        DiagnosticKind
	FeatureName string
	FeatureKind Kind // kind of the colliding feature, duplicates only
	PluginName  string
	Line        string
}

// String renders the diagnostic for logs
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagDuplicateFeature:
		return fmt.Sprintf("duplicate %s %q (plugin %q)", d.FeatureKind, d.FeatureName, d.PluginName)
	case DiagMalformedLine:
		return fmt.Sprintf("malformed listing line %q", d.Line)
	default:
		return d.Line
	}
}

// Options control parsing behavior. The zero value matches the
// reference tool except for description handling, see TruncateDescription.
type Options struct {
	DuplicatePolicy DuplicatePolicy

	// TruncateDescription keeps only the third colon-separated field as
	// the description, silently dropping the rest when the description
	// itself contains a colon. This is what the reference tool does.
	// The default keeps everything after the second colon verbatim.
	TruncateDescription bool
}

// Catalog is the aggregate built from one summary listing. It is
// immutable once built; a refresh constructs a new Catalog wholesale.
type Catalog struct {
	// Plugins holds every distinct plugin name seen in the listing,
	// including plugins whose only features were excluded factories.
	Plugins map[string]struct{}

	// Features maps feature name to feature, elements and type-finders only.
	Features map[string]Feature

	// Diagnostics records duplicate and malformed-line issues in input order.
	Diagnostics []Diagnostic
}

// Build parses a summary listing with default options.
func Build(raw string) *Catalog {
	return BuildWithOptions(raw, Options{})
}

// BuildWithOptions parses a summary listing. It is a pure function of
// its input: malformed lines are skipped, duplicates resolved per the
// options, and nothing ever panics or fails.
func BuildWithOptions(raw string, opts Options) *Catalog {
	cat := &Catalog{
		Plugins:  make(map[string]struct{}),
		Features: make(map[string]Feature),
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) == 0 {
			continue
		}
		// The listing ends with a "Total count: ..." summary line.
		if strings.Contains(line, summaryMarker) {
			continue
		}

		fields := strings.Split(line, ":")
		for i, f := range fields {
			fields[i] = strings.TrimLeft(f, " \t")
		}
		// A line needs a plugin name and a non-empty feature name;
		// anything less is malformed and contributes nothing, not even
		// its plugin.
		if len(fields) < 2 || fields[1] == "" {
			cat.Diagnostics = append(cat.Diagnostics, Diagnostic{
				Kind: DiagMalformedLine,
				Line: line,
			})
			continue
		}

		feat := Feature{
			PluginName:  fields[0],
			FeatureName: fields[1],
		}
		if len(fields) >= 3 {
			if opts.TruncateDescription {
				feat.Description = fields[2]
			} else {
				// Keep the raw remainder so descriptions containing
				// ':' survive with their spacing intact.
				rest := strings.SplitN(line, ":", 3)[2]
				feat.Description = strings.TrimLeft(rest, " \t")
			}
		}

		// Every well-formed line contributes its plugin, even excluded factories.
		cat.Plugins[feat.PluginName] = struct{}{}

		feat.Kind = Classify(feat.FeatureName)
		if feat.Kind == KindExcluded {
			continue
		}

		if _, exists := cat.Features[feat.FeatureName]; exists {
			cat.Diagnostics = append(cat.Diagnostics, Diagnostic{
				Kind:        DiagDuplicateFeature,
				FeatureName: feat.FeatureName,
				FeatureKind: feat.Kind,
				PluginName:  feat.PluginName,
				Line:        line,
			})
			if opts.DuplicatePolicy == DuplicateFirstWins {
				continue
			}
		}
		cat.Features[feat.FeatureName] = feat
	}

	return cat
}

// Classify derives the kind of a feature from its name.
func Classify(featureName string) Kind {
	for _, factory := range excludedFactories {
		if strings.Contains(featureName, factory) {
			return KindExcluded
		}
	}
	if strings.Contains(featureName, "/") {
		return KindTypeFinder
	}
	return KindElement
}

// PluginNames returns the plugin names sorted alphabetically.
func (c *Catalog) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for name := range c.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPlugin reports whether the catalog saw the given plugin.
func (c *Catalog) HasPlugin(name string) bool {
	_, ok := c.Plugins[name]
	return ok
}
