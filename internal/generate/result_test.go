// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devkit-tui/internal/feature"
)

func mustFeature(t *testing.T, id string) feature.Config {
	t.Helper()
	f, ok := feature.Get(id)
	require.True(t, ok)
	return f
}

func TestParseTextPassthrough(t *testing.T) {
	f := mustFeature(t, feature.IDExplain)
	result, err := Parse(f, "# Explanation\n\nIt loops.")
	require.NoError(t, err)
	assert.Equal(t, feature.IDExplain, result.FeatureID)
	assert.Equal(t, "# Explanation\n\nIt loops.", result.Text)
	assert.Nil(t, result.Fix)
	assert.Nil(t, result.Mockup)
}

func TestParseFixResult(t *testing.T) {
	f := mustFeature(t, feature.IDFix)
	raw := `{"analysis":"off-by-one","correctedCode":"for i := 0; i < n; i++ {}","explanation":"loop bound fixed"}`
	result, err := Parse(f, raw)
	require.NoError(t, err)
	require.NotNil(t, result.Fix)
	assert.Equal(t, "off-by-one", result.Fix.Analysis)
	assert.Equal(t, "loop bound fixed", result.Fix.Explanation)
}

func TestParseFixMissingFieldIsMalformed(t *testing.T) {
	f := mustFeature(t, feature.IDFix)
	raw := `{"analysis":"off-by-one","correctedCode":""}`
	_, err := Parse(f, raw)
	assert.ErrorIs(t, err, ErrMalformedResult)
}

func TestParseFixInvalidJSONIsMalformed(t *testing.T) {
	f := mustFeature(t, feature.IDFix)
	_, err := Parse(f, "I could not produce JSON, sorry")
	assert.ErrorIs(t, err, ErrMalformedResult)
}

func TestParseMockupResult(t *testing.T) {
	f := mustFeature(t, feature.IDMockup)
	raw := `{"html":"<div>hi</div>","css":"div { color: red; }"}`
	result, err := Parse(f, raw)
	require.NoError(t, err)
	require.NotNil(t, result.Mockup)
	assert.Equal(t, "<div>hi</div>", result.Mockup.HTML)
}

func TestParseStripsCodeFence(t *testing.T) {
	f := mustFeature(t, feature.IDMockup)
	raw := "```json\n{\"html\":\"<p>x</p>\",\"css\":\"p{}\"}\n```"
	result, err := Parse(f, raw)
	require.NoError(t, err)
	require.NotNil(t, result.Mockup)
	assert.Equal(t, "<p>x</p>", result.Mockup.HTML)
}

func TestBuildPreviewDocumentEmbedsBoth(t *testing.T) {
	doc := BuildPreviewDocument(&MockupResult{
		HTML: "<main>content</main>",
		CSS:  "main { padding: 1rem; }",
	})
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<main>content</main>")
	assert.Contains(t, doc, "main { padding: 1rem; }")
	assert.True(t, strings.Index(doc, "<style>") < strings.Index(doc, "<main>"),
		"styles must precede markup")
}

func TestBuildPreviewHostEscapesQuotes(t *testing.T) {
	host := BuildPreviewHost(&MockupResult{
		HTML: `<div class="card">He said "hi"</div>`,
		CSS:  `.card { font-family: "Inter"; }`,
	})

	// Everything inside srcdoc="..." must be entity-escaped; a literal
	// double quote would terminate the attribute early.
	start := strings.Index(host, `srcdoc="`)
	require.GreaterOrEqual(t, start, 0)
	inner := host[start+len(`srcdoc="`):]
	end := strings.Index(inner, `">`)
	require.GreaterOrEqual(t, end, 0)
	inner = inner[:end]

	assert.NotContains(t, inner, `"`)
	assert.Contains(t, inner, "&#34;")
	assert.Contains(t, inner, "&lt;div")
	assert.Contains(t, host, `sandbox=""`)
}

func TestBuildPreviewHostRoundTripsContent(t *testing.T) {
	host := BuildPreviewHost(&MockupResult{HTML: "<p>alpha</p>", CSS: "p{}"})
	assert.Contains(t, host, "&lt;p&gt;alpha&lt;/p&gt;")
}
