package extraction

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAbout_AnchorSibling(t *testing.T) {
	paragraph := textOfLength(120)
	require.False(t, strings.HasPrefix(strings.ToLower(paragraph), "experience"))

	html := fmt.Sprintf(`<html><body><section>
		<div id="about"></div>
		<div><p>%s</p></div>
	</section></body></html>`, paragraph)

	got := newTestExtractor().ExtractScoredField(parse(t, html), FieldAbout)
	assert.Equal(t, paragraph, got)
}

func TestExtractAbout_AnchorThreshold(t *testing.T) {
	tests := []struct {
		name   string
		length int
		found  bool
	}{
		{"49 characters rejected", 49, false},
		{"50 characters rejected", 50, false},
		{"51 characters accepted", 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := textOfLength(tt.length)
			html := fmt.Sprintf(`<html><body><div id="about"></div><div><p>%s</p></div></body></html>`, text)

			got := newTestExtractor().aboutFromAnchor(parse(t, html))
			if tt.found {
				assert.Equal(t, text, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestExtractAbout_AnchorShortTextFallsThroughEveryStage(t *testing.T) {
	html := fmt.Sprintf(`<html><body><div id="about"></div><div><p>%s</p></div></body></html>`, textOfLength(49))
	assert.Empty(t, newTestExtractor().ExtractScoredField(parse(t, html), FieldAbout))
}

func TestExtractAbout_AnchorRejectsSectionLabels(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<div id="about"></div>
		<div><p>Experience %s</p></div>
	</body></html>`, textOfLength(80))

	assert.Empty(t, newTestExtractor().aboutFromAnchor(parse(t, html)))
}

func TestExtractAbout_AnchorParentSibling(t *testing.T) {
	text := textOfLength(90)
	html := fmt.Sprintf(`<html><body>
		<div class="header"><span id="about"></span></div>
		<div class="body">%s</div>
	</body></html>`, text)

	assert.Equal(t, text, newTestExtractor().aboutFromAnchor(parse(t, html)))
}

func TestExtractAbout_SelectorThreshold(t *testing.T) {
	tests := []struct {
		name   string
		length int
		found  bool
	}{
		{"100 characters rejected", 100, false},
		{"101 characters accepted", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := textOfLength(tt.length)
			html := fmt.Sprintf(`<html><body><div class="artdeco-card"><span class="break-words">%s</span></div></body></html>`, text)

			got := newTestExtractor().ExtractScoredField(parse(t, html), FieldAbout)
			if tt.found {
				assert.Equal(t, text, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestExtractAbout_SelectorSkipsActivity(t *testing.T) {
	activity := "See all activity " + textOfLength(120)
	bio := textOfLength(130)
	html := fmt.Sprintf(`<html><body>
		<div class="artdeco-card"><span class="break-words">%s</span></div>
		<div class="artdeco-card"><span class="break-words">%s</span></div>
	</body></html>`, activity, bio)

	assert.Equal(t, bio, newTestExtractor().aboutFromSelectors(parse(t, html)))
}

func TestExtractAbout_SectionScan(t *testing.T) {
	bio := textOfLength(140)
	html := fmt.Sprintf(`<html><body>
		<div class="pv-about-section"><h2>About</h2></div>
		<div><p>%s</p></div>
	</body></html>`, bio)

	e := newTestExtractor()
	doc := parse(t, html)
	assert.Empty(t, e.aboutFromAnchor(doc))
	assert.Empty(t, e.aboutFromSelectors(doc))
	assert.Equal(t, bio, e.ExtractScoredField(doc, FieldAbout))
}

func TestExtractAbout_SectionScanRejectsSkipWords(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<div class="pv-about-section"><h2>About</h2></div>
		<div><p>%s with recommendations</p></div>
	</body></html>`, textOfLength(140))

	assert.Empty(t, newTestExtractor().aboutFromSections(parse(t, html)))
}

func TestExtractAbout_ScoredCandidatesTieGoesToFirst(t *testing.T) {
	first := "First: " + textOfLength(180)
	second := "Second: " + textOfLength(179)
	html := fmt.Sprintf(`<html><body>
		<section class="summary"><p>%s</p></section>
		<section class="summary"><p>%s</p></section>
	</body></html>`, first, second)

	e := newTestExtractor()
	doc := parse(t, html)
	assert.Empty(t, e.aboutFromSections(doc), "no container mentions about")
	assert.Equal(t, first, e.ExtractScoredField(doc, FieldAbout))
}

func TestExtractAbout_ScoredCandidatesPicksHighest(t *testing.T) {
	weak := "Weak: " + textOfLength(200)
	strong := "Strong: " + textOfLength(320)
	html := fmt.Sprintf(`<html><body>
		<section class="summary"><p>%s</p></section>
		<section class="summary"><p>%s</p></section>
	</body></html>`, weak, strong)

	assert.Equal(t, strong, newTestExtractor().aboutFromScoredCandidates(parse(t, html)))
}

func TestExtractAbout_ScoredCandidatesIgnoresNonPositive(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<section class="summary"><p>Studied at the university for a degree. %s</p></section>
	</body></html>`, textOfLength(200))

	assert.Empty(t, newTestExtractor().aboutFromScoredCandidates(parse(t, html)))
}

func TestExtractAbout_BioSignals(t *testing.T) {
	bio := "I am a passionate and dedicated builder with a background in logistics. " + textOfLength(160)
	require.Greater(t, len(bio), 200)
	require.LessOrEqual(t, len(bio), 300)

	html := fmt.Sprintf(`<html><body><article><p>%s</p></article></body></html>`, bio)

	e := newTestExtractor()
	doc := parse(t, html)
	assert.Empty(t, e.aboutFromScoredCandidates(doc))
	assert.Equal(t, bio, e.ExtractScoredField(doc, FieldAbout))
}

func TestExtractAbout_BioSignalsNeedTwoWords(t *testing.T) {
	text := "I am passionate about nothing in particular and keep this short. " + textOfLength(180)
	html := fmt.Sprintf(`<html><body><article><p>%s</p></article></body></html>`, text)

	assert.Empty(t, newTestExtractor().aboutFromBioSignals(parse(t, html)))
}

func TestExtractAbout_NothingFound(t *testing.T) {
	doc := parse(t, `<html><body><h1>Jane</h1><p>Short.</p></body></html>`)
	assert.Empty(t, newTestExtractor().ExtractScoredField(doc, FieldAbout))
}
