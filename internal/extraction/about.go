package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/profile-scraper/internal/types"
)

// AboutSelectors are the current-markup locations of the biography text, tried in order.
var AboutSelectors = []string{
	"div[data-generated-suggestion-target] .break-words",
	".pv-shared-text-with-see-more .break-words",
	".core-section-container__content .break-words",
	`section[data-section="about"] .break-words`,
	".artdeco-card .break-words",
	".scaffold-layout__detail .break-words",
	"#about ~ * .break-words",
	"#about + div .break-words",
}

// BioSignals is the self-descriptive vocabulary counted by the last biography stage.
var BioSignals = []string{
	"passionate", "experienced", "professional", "dedicated", "skilled",
	"background", "expertise", "specializing", "focus", "career",
}

var (
	selectorStageSkips = []string{"experience at", "education", "skills", "see all activity"}
	sectionStageSkips  = []string{"experience", "education", "skills", "activity", "recommendations"}
	bareSectionLabel   = regexp.MustCompile(`^(about|activity|education|experience)$`)
)

// aboutCascade orders the biography stages from most to least precise.
func (e *Extractor) aboutCascade() Cascade {
	return Cascade{
		Field: FieldAbout,
		Strategies: []Strategy{
			{Name: "anchor", Extract: e.aboutFromAnchor},
			{Name: "selectors", Extract: e.aboutFromSelectors},
			{Name: "section-scan", Extract: e.aboutFromSections},
			{Name: "scored-candidates", Extract: e.aboutFromScoredCandidates},
			{Name: "bio-signals", Extract: e.aboutFromBioSignals},
		},
	}
}

// aboutFromAnchor inspects the elements around the #about marker.
func (e *Extractor) aboutFromAnchor(doc *goquery.Document) string {
	anchor := doc.Find("#about").First()
	if anchor.Length() == 0 {
		return ""
	}

	candidates := []*goquery.Selection{
		anchor.Next(),
		anchor.Parent().Next(),
		firstFollowing(doc, anchor.Get(0), "div", "section"),
	}
	for i, c := range candidates {
		if c == nil || c.Length() == 0 {
			continue
		}
		text := strippedText(c)
		if runeLen(text) > e.cal.AnchorMinLength && !hasAnyPrefix(strings.ToLower(text), sectionLabels) {
			e.logger.Debug().Int("candidate", i).Msg("about matched near #about anchor")
			return text
		}
	}
	return ""
}

// aboutFromSelectors scans the known biography containers.
func (e *Extractor) aboutFromSelectors(doc *goquery.Document) string {
	for _, selector := range AboutSelectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strippedText(s)
			if runeLen(text) <= e.cal.SelectorMinLength {
				return true
			}
			if containsAny(strings.ToLower(prefix(text, e.cal.LabelWindow)), selectorStageSkips) {
				return true
			}
			found = text
			return false
		})
		if found != "" {
			e.logger.Debug().Str("selector", selector).Msg("about matched selector")
			return found
		}
	}
	return ""
}

// aboutFromSections looks for any container whose markup mentions "about" and checks it and
// the containers that follow it.
func (e *Extractor) aboutFromSections(doc *goquery.Document) string {
	sections := doc.Find("section, div")
	total := sections.Length()
	for i := 0; i < total; i++ {
		if !strings.Contains(outerHTMLLower(sections.Eq(i)), "about") {
			continue
		}
		for j := 0; j < e.cal.SectionLookahead && i+j < total; j++ {
			text := strippedText(sections.Eq(i + j))
			if e.acceptSectionText(text) {
				return text
			}
		}
	}
	return ""
}

func (e *Extractor) acceptSectionText(text string) bool {
	if runeLen(text) <= e.cal.SectionMinLength {
		return false
	}
	lower := strings.ToLower(text)
	if containsAny(lower, sectionStageSkips) {
		return false
	}
	return !bareSectionLabel.MatchString(strings.TrimSpace(lower))
}

// aboutFromScoredCandidates scores every long text element and keeps the best one.
func (e *Extractor) aboutFromScoredCandidates(doc *goquery.Document) string {
	var scored []types.ScoredCandidate
	doc.Find("div, span, p").Each(func(_ int, s *goquery.Selection) {
		text := strippedText(s)
		if runeLen(text) <= e.cal.CandidateMinLength {
			return
		}
		c := Candidate{Text: text, ParentMarkup: outerHTMLLower(s.Parent())}
		if score := Score(e.rules, c, e.cal); score > 0 {
			scored = append(scored, types.ScoredCandidate{Text: text, Score: score})
		}
	})

	best, ok := BestCandidate(scored)
	if !ok {
		return ""
	}
	e.logger.Debug().Int("score", best.Score).Int("candidates", len(scored)).Msg("about matched by score")
	return best.Text
}

// aboutFromBioSignals returns the first long text node using enough self-descriptive words.
func (e *Extractor) aboutFromBioSignals(doc *goquery.Document) string {
	for _, text := range textNodes(doc.Selection) {
		if runeLen(text) <= e.cal.BioNodeMinLength {
			continue
		}
		lower := strings.ToLower(text)
		hits := 0
		for _, signal := range BioSignals {
			if strings.Contains(lower, signal) {
				hits++
			}
		}
		if hits >= e.cal.BioSignalMinMatches {
			e.logger.Debug().Int("signals", hits).Msg("about matched by vocabulary")
			return text
		}
	}
	return ""
}
