package catalog

import (
	"context"
	"log/slog"
)

// Inspector obtains raw text from the external introspection tool. All
// methods block until the tool exits; errors describe launch or exit
// failures.
type Inspector interface {
	// Listing returns the one-line-per-feature summary listing.
	Listing(ctx context.Context) (string, error)
	// FeatureDetail returns the free-text report for an element or type-finder.
	FeatureDetail(ctx context.Context, name string) (string, error)
	// PluginDetail returns the free-text report for a plugin.
	PluginDetail(ctx context.Context, name string) (string, error)
}

// Service wraps an Inspector with the degrade-to-empty policy: a tool
// failure yields an empty catalog or empty detail text plus a log
// entry, never an error. Detail text is passed through verbatim.
type Service struct {
	insp Inspector
	opts Options
	log  *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(insp Inspector, opts Options, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{insp: insp, opts: opts, log: log}
}

// BuildCatalog obtains the summary listing and parses it. On tool
// failure it returns an empty (but usable) catalog.
func (s *Service) BuildCatalog(ctx context.Context) *Catalog {
	raw, err := s.insp.Listing(ctx)
	if err != nil {
		s.log.Error("listing failed, catalog will be empty", "error", err)
		return BuildWithOptions("", s.opts)
	}

	cat := BuildWithOptions(raw, s.opts)
	for _, d := range cat.Diagnostics {
		s.log.Warn("listing issue", "detail", d.String())
	}
	s.log.Debug("catalog built",
		"plugins", len(cat.Plugins),
		"features", len(cat.Features),
		"diagnostics", len(cat.Diagnostics))
	return cat
}

// FeatureDetail returns the tool's report for a feature, or "" on failure.
func (s *Service) FeatureDetail(ctx context.Context, name string) string {
	text, err := s.insp.FeatureDetail(ctx, name)
	if err != nil {
		s.log.Error("feature detail failed", "feature", name, "error", err)
		return ""
	}
	return text
}

// PluginDetail returns the tool's report for a plugin, or "" on failure.
func (s *Service) PluginDetail(ctx context.Context, name string) string {
	text, err := s.insp.PluginDetail(ctx, name)
	if err != nil {
		s.log.Error("plugin detail failed", "plugin", name, "error", err)
		return ""
	}
	return text
}

// Detail fetches the report appropriate for the entry's kind.
func (s *Service) Detail(ctx context.Context, e Entry) string {
	if e.Kind == KindPlugin {
		return s.PluginDetail(ctx, e.Name)
	}
	return s.FeatureDetail(ctx, e.Name)
}
