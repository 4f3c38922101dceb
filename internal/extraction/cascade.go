// Package extraction locates profile fields in rendered profile pages whose markup has no
// stable identifiers. Simple fields use an ordered selector cascade; the biography and the
// employer names use staged, scored candidate extraction.
package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field names one of the values extracted from a profile page.
type Field string

const (
	// FieldName is the person's display name.
	FieldName Field = "name"
	// FieldHeadline is the one-line professional headline.
	FieldHeadline Field = "headline"
	// FieldAbout is the free-text biography.
	FieldAbout Field = "about"
	// FieldCurrentCompany is the first employer discovered.
	FieldCurrentCompany Field = "current_company"
	// FieldPreviousCompany is the second employer discovered.
	FieldPreviousCompany Field = "previous_company"
)

// Strategy is one named rule for locating a field. Extract must be a pure function of the
// document and returns "" when the rule does not apply.
type Strategy struct {
	Name    string
	Extract func(doc *goquery.Document) string
}

// Cascade is an ordered list of strategies for one field, most specific first.
type Cascade struct {
	Field      Field
	Strategies []Strategy
}

// Run tries each strategy in order and returns the first non-empty trimmed result along
// with the name of the strategy that produced it. Later strategies are not evaluated once
// one matches. Both values are "" when nothing matches.
func (c Cascade) Run(doc *goquery.Document) (text string, strategy string) {
	if doc == nil {
		return "", ""
	}
	for _, s := range c.Strategies {
		if s.Extract == nil {
			continue
		}
		if text := strings.TrimSpace(s.Extract(doc)); text != "" {
			return text, s.Name
		}
	}
	return "", ""
}

// SelectorStrategy builds a strategy that takes the text of the first element matching
// selector. An empty first match does not fall through to later matches of the same selector.
func SelectorStrategy(selector string) Strategy {
	return Strategy{
		Name: selector,
		Extract: func(doc *goquery.Document) string {
			el := doc.Find(selector).First()
			if el.Length() == 0 {
				return ""
			}
			return strippedText(el)
		},
	}
}

// SelectorCascade builds a cascade of SelectorStrategy rules.
func SelectorCascade(field Field, selectors ...string) Cascade {
	strategies := make([]Strategy, 0, len(selectors))
	for _, sel := range selectors {
		strategies = append(strategies, SelectorStrategy(sel))
	}
	return Cascade{Field: field, Strategies: strategies}
}

// NameSelectors are tried in order for the profile name.
var NameSelectors = []string{
	"h1.text-heading-xlarge",
	"h1.pv-text-details__left-panel",
	"h1",
	".pv-top-card--list h1",
	".text-heading-xlarge",
	".pv-text-details__left-panel h1",
}

// HeadlineSelectors are tried in order for the headline.
var HeadlineSelectors = []string{
	".text-body-medium.break-words",
	".pv-text-details__left-panel .text-body-medium",
	".text-body-medium",
	".pv-top-card--experience-list-summary",
	".top-card-layout__headline",
	".pv-shared-text-with-see-more .break-words",
}

// NameCascade returns the default cascade for FieldName.
func NameCascade() Cascade {
	return SelectorCascade(FieldName, NameSelectors...)
}

// HeadlineCascade returns the default cascade for FieldHeadline.
func HeadlineCascade() Cascade {
	return SelectorCascade(FieldHeadline, HeadlineSelectors...)
}
