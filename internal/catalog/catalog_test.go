package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuild_BasicListing(t *testing.T) {
	raw := "coreelements:filesrc: File source\n" +
		"coreelements:filesink: File sink\n" +
		"Total count: 2"

	cat := Build(raw)

	assert.Equal(t, map[string]struct{}{"coreelements": {}}, cat.Plugins)
	require.Len(t, cat.Features, 2)

	src, ok := cat.Features["filesrc"]
	require.True(t, ok)
	assert.Equal(t, "coreelements", src.PluginName)
	assert.Equal(t, "File source", src.Description)
	assert.Equal(t, KindElement, src.Kind)

	sink, ok := cat.Features["filesink"]
	require.True(t, ok)
	assert.Equal(t, "File sink", sink.Description)
	assert.Equal(t, KindElement, sink.Kind)

	assert.Empty(t, cat.Diagnostics)
}

func TestBuild_TypeFinder(t *testing.T) {
	cat := Build("videotestsrc:ANY/test: some type\n")

	feat, ok := cat.Features["ANY/test"]
	require.True(t, ok)
	assert.Equal(t, KindTypeFinder, feat.Kind)
}

func TestBuild_ExcludedFactoryContributesPluginOnly(t *testing.T) {
	cat := Build("x:GstDeviceProviderFactory:foo: desc\n")

	assert.True(t, cat.HasPlugin("x"))
	assert.Empty(t, cat.Features)
}

func TestBuild_SkipsBlankAndSummaryLines(t *testing.T) {
	raw := "\n\ncoreelements:identity: Identity\n\nTotal count: 1 plugin, 1 feature\n"

	cat := Build(raw)

	assert.Len(t, cat.Features, 1)
	assert.Len(t, cat.Plugins, 1)
	assert.False(t, cat.HasPlugin("Total count"))
}

func TestBuild_MissingDescription(t *testing.T) {
	cat := Build("plugin:feature\n")

	feat, ok := cat.Features["feature"]
	require.True(t, ok)
	assert.Equal(t, "", feat.Description)
}

func TestBuild_MalformedLineSkipped(t *testing.T) {
	cat := Build("justoneword\nplugin:feature: desc\n")

	assert.Len(t, cat.Features, 1)
	assert.Len(t, cat.Plugins, 1)
	require.Len(t, cat.Diagnostics, 1)
	assert.Equal(t, DiagMalformedLine, cat.Diagnostics[0].Kind)
	assert.Equal(t, "justoneword", cat.Diagnostics[0].Line)
}

func TestBuild_EmptyFeatureNameSkipped(t *testing.T) {
	cat := Build("p:\nq::\nplugin:ok: desc\n")

	_, hasEmpty := cat.Features[""]
	assert.False(t, hasEmpty, "empty feature name must never be indexed")
	assert.Contains(t, cat.Features, "ok")

	// Lines without a feature contribute nothing, not even their plugin.
	assert.False(t, cat.HasPlugin("p"))
	assert.False(t, cat.HasPlugin("q"))
	assert.True(t, cat.HasPlugin("plugin"))

	require.Len(t, cat.Diagnostics, 2)
	for _, d := range cat.Diagnostics {
		assert.Equal(t, DiagMalformedLine, d.Kind)
	}
}

func TestBuild_DuplicateLastWins(t *testing.T) {
	raw := "p:dup:first\np:dup:second\n"

	cat := Build(raw)

	require.Contains(t, cat.Features, "dup")
	assert.Equal(t, "second", cat.Features["dup"].Description)
	require.Len(t, cat.Diagnostics, 1)
	assert.Equal(t, DiagDuplicateFeature, cat.Diagnostics[0].Kind)
	assert.Equal(t, "dup", cat.Diagnostics[0].FeatureName)
	assert.Equal(t, KindElement, cat.Diagnostics[0].FeatureKind)
}

func TestBuild_DuplicateTypeFinderReportedWithKind(t *testing.T) {
	cat := Build("a:audio/x-dup: one\nb:audio/x-dup: two\n")

	require.Len(t, cat.Diagnostics, 1)
	assert.Equal(t, KindTypeFinder, cat.Diagnostics[0].FeatureKind)
	assert.Contains(t, cat.Diagnostics[0].String(), "typefinder")
}

func TestBuild_DuplicateFirstWins(t *testing.T) {
	raw := "p:dup:first\nq:dup:second\n"

	cat := BuildWithOptions(raw, Options{DuplicatePolicy: DuplicateFirstWins})

	assert.Equal(t, "first", cat.Features["dup"].Description)
	assert.Equal(t, "p", cat.Features["dup"].PluginName)
	// The duplicate is still reported even though it lost.
	require.Len(t, cat.Diagnostics, 1)
	assert.Equal(t, "q", cat.Diagnostics[0].PluginName)
	// Both plugins were still seen.
	assert.True(t, cat.HasPlugin("q"))
}

func TestBuild_DescriptionWithColonJoined(t *testing.T) {
	cat := Build("plugin:feature: Audio: raw mixer\n")

	assert.Equal(t, "Audio: raw mixer", cat.Features["feature"].Description)
}

func TestBuild_DescriptionWithColonTruncated(t *testing.T) {
	cat := BuildWithOptions("plugin:feature: Audio: raw mixer\n", Options{TruncateDescription: true})

	assert.Equal(t, "Audio", cat.Features["feature"].Description)
}

func TestBuild_LeadingWhitespaceTrimmed(t *testing.T) {
	cat := Build("plugin:  feature:   some description\n")

	feat, ok := cat.Features["feature"]
	require.True(t, ok)
	assert.Equal(t, "some description", feat.Description)
}

func TestBuild_CRLFInput(t *testing.T) {
	cat := Build("plugin:feature: desc\r\nTotal count: 1\r\n")

	require.Contains(t, cat.Features, "feature")
	assert.Equal(t, "desc", cat.Features["feature"].Description)
}

func TestBuild_EmptyInput(t *testing.T) {
	cat := Build("")

	assert.NotNil(t, cat.Plugins)
	assert.NotNil(t, cat.Features)
	assert.Empty(t, cat.Plugins)
	assert.Empty(t, cat.Features)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"filesrc", KindElement},
		{"videotestsrc", KindElement},
		{"ANY/test", KindTypeFinder},
		{"audio/x-raw", KindTypeFinder},
		{"GstDeviceProviderFactory-v4l2", KindExcluded},
		{"GstDynamicTypeFactory-thing", KindExcluded},
		{"GstTracerFactory-latency", KindExcluded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

func TestPluginNames_Sorted(t *testing.T) {
	cat := Build("zeta:a\nalpha:b\nmid:c\n")

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, cat.PluginNames())
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := ParseDuplicatePolicy("first-wins")
	require.NoError(t, err)
	assert.Equal(t, DuplicateFirstWins, p)

	p, err = ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DuplicateLastWins, p)

	_, err = ParseDuplicatePolicy("coin-toss")
	assert.Error(t, err)
}

// genListing produces a random well-formed summary listing.
func genListing(t *rapid.T) string {
	plugin := rapid.StringMatching(`[a-z][a-z0-9]{0,8}`)
	// Feature names may be empty so the builder's skip path gets exercised.
	feature := rapid.StringMatching(`([a-zA-Z][a-zA-Z0-9]{0,8}(/[a-z][a-z0-9]{0,5})?)?`)
	desc := rapid.StringMatching(`[ a-zA-Z0-9:]{0,20}`)

	n := rapid.IntRange(0, 30).Draw(t, "lines")
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(plugin.Draw(t, "plugin"))
		b.WriteString(":")
		b.WriteString(feature.Draw(t, "feature"))
		b.WriteString(":")
		b.WriteString(desc.Draw(t, "desc"))
		b.WriteString("\n")
	}
	b.WriteString("Total count: summary\n")
	return b.String()
}

func TestBuild_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := genListing(t)

		first := Build(raw)
		second := Build(raw)

		assert.Equal(t, first.Plugins, second.Plugins)
		assert.Equal(t, first.Features, second.Features)
		assert.Equal(t, first.Diagnostics, second.Diagnostics)
	})
}

func TestBuild_PluginsSupersetOfFeaturePlugins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := Build(genListing(t))

		for name, feat := range cat.Features {
			assert.True(t, cat.HasPlugin(feat.PluginName),
				"feature %q references plugin %q missing from plugin set", name, feat.PluginName)
		}
	})
}

func TestBuild_FeatureKindsNeverExcluded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := Build(genListing(t))

		for name, feat := range cat.Features {
			assert.NotEmpty(t, name)
			assert.Equal(t, Classify(name), feat.Kind)
			assert.NotEqual(t, KindExcluded, feat.Kind)
			assert.NotEqual(t, KindPlugin, feat.Kind)
		}
	})
}
