package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/profile-scraper/internal/types"
)

// ExperienceItemSelectors locate experience entries, first selector with any match wins.
var ExperienceItemSelectors = []string{
	".pvs-list__paged-list-item",
	".pvs-entity",
	".artdeco-list__item",
	".experience-item",
	`li[data-field="experience"]`,
}

// CompanySelectors are tried inside an experience entry before any text heuristic.
var CompanySelectors = []string{
	`.t-14.t-normal span[aria-hidden="true"]`,
	".pvs-entity__caption-wrapper",
	".pv-entity__secondary-title",
	".t-14.t-normal",
	"span.t-14",
	".visually-hidden",
	`[data-field="company"]`,
}

// LegalEntitySuffixes mark a phrase as a company name.
var LegalEntitySuffixes = []string{"Inc", "Corp", "LLC", "Ltd", "Company", "Technologies", "Solutions"}

var (
	// "at <Capitalized phrase>" ending at a bullet, a line break or the end of the entry.
	atCompanyPattern = regexp.MustCompile(`\bat\s+([A-Z][A-Za-z\s&.,-]+?)(?:\s*[·•]|\s*$|\s*\n)`)
	// The page-wide variant also stops at a dash.
	atCompanyPagePattern = regexp.MustCompile(`\bat\s+([A-Z][A-Za-z\s&.,-]+?)(?:\s+[·•]|\s*\n|\s*-|\s*$)`)
	// Capitalized words, joined by "of", "and" or "&", closed by a legal-entity suffix. The
	// suffix may open a longer word, so "Acme Corporation" yields "Acme Corp".
	legalEntityPattern = regexp.MustCompile(`\b([A-Z][A-Za-z&]*(?:[ \t]+(?:[A-Z][A-Za-z&]*|of|and|&))*[ \t]+(?:Inc|Corp|LLC|Ltd|Company|Technologies|Solutions))`)

	trailingBullet = regexp.MustCompile(`(?s)\s*[·•].*$`)
	trailingDash   = regexp.MustCompile(`(?s)\s*-.*$`)
	allDigits      = regexp.MustCompile(`^[0-9]+$`)

	experienceHints    = []string{"at ", "company", "inc", "corp", "ltd", "llc", "software", "engineer", "manager", "director"}
	durationWords      = []string{"full-time", "part-time", "months", "years", "present"}
	spanSkips          = []string{"full-time", "part-time", "experience"}
	rejectedNames      = map[string]bool{"experience": true, "education": true, "skills": true, "about": true}
	minedNameSkips     = []string{"experience at", "education at", "university"}
)

// Length bounds for entries found by the text-pattern fallback.
const (
	patternItemMinimum = 30
	patternItemMaximum = 500
)

// ExtractCompanies discovers up to two distinct employer names, current first.
func (e *Extractor) ExtractCompanies(doc *goquery.Document) types.CompanySet {
	var set types.CompanySet
	if doc == nil {
		return set
	}

	items, source := e.experienceItems(doc)
	if len(items) > 0 {
		e.logger.Debug().Str("source", source).Int("items", len(items)).Msg("experience items found")
	}
	if len(items) > e.cal.MaxExperienceItems {
		items = items[:e.cal.MaxExperienceItems]
	}

	for _, item := range items {
		raw := e.companyFromItem(item)
		if raw == "" {
			continue
		}
		name := CleanCompanyName(raw)
		if !e.acceptCompany(name, &set) {
			continue
		}
		set.Add(name)
		if set.Full() {
			break
		}
	}

	if !set.Full() {
		e.mineCompanies(lineText(doc.Selection), &set)
	}

	if set.Len() == 0 {
		e.logger.Debug().Msg("no companies found")
	}
	return set
}

// experienceItems returns candidate experience entries and a label for the rule that found them.
func (e *Extractor) experienceItems(doc *goquery.Document) ([]*goquery.Selection, string) {
	for _, selector := range ExperienceItemSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return splitSelection(found), selector
		}
	}

	if anchor := doc.Find("#experience").First(); anchor.Length() > 0 {
		parent := anchor.Parent()
		for parent.Length() > 0 && parent.Find("li, .pvs-list__paged-list-item").Length() == 0 {
			parent = parent.Parent()
			if parent.Length() == 0 || goquery.NodeName(parent) == "body" {
				break
			}
		}
		if parent.Length() > 0 {
			return splitSelection(parent.Find("li, .pvs-list__paged-list-item, .pvs-entity")), "#experience"
		}
	}

	var items []*goquery.Selection
	doc.Find("li, .pv-entity__summary-info").Each(func(_ int, s *goquery.Selection) {
		text := strippedText(s)
		n := runeLen(text)
		if n <= patternItemMinimum || n >= patternItemMaximum {
			return
		}
		if containsAny(strings.ToLower(text), experienceHints) {
			items = append(items, s)
		}
	})
	return items, "pattern"
}

func splitSelection(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// companyFromItem applies the per-entry heuristics in order and returns the raw match.
func (e *Extractor) companyFromItem(item *goquery.Selection) string {
	for _, selector := range CompanySelectors {
		el := item.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		text := strippedText(el)
		if text != "" && !hasAnyPrefix(strings.ToLower(text), sectionLabels) {
			e.logger.Debug().Str("selector", selector).Str("company", text).Msg("company matched selector")
			return text
		}
	}

	itemText := lineText(item)
	if m := atCompanyPattern.FindStringSubmatch(itemText); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			e.logger.Debug().Str("company", name).Msg("company matched 'at' pattern")
			return name
		}
	}

	if lines := nonEmptyLines(itemText); len(lines) >= 2 {
		if !containsAny(strings.ToLower(lines[1]), durationWords) {
			e.logger.Debug().Str("company", lines[1]).Msg("company matched second line")
			return lines[1]
		}
	}

	var found string
	item.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strippedText(s)
		n := runeLen(text)
		if n <= 3 || n >= 50 {
			return true
		}
		if !containsAny(text, LegalEntitySuffixes) || containsAny(strings.ToLower(text), spanSkips) {
			return true
		}
		found = text
		return false
	})
	if found != "" {
		e.logger.Debug().Str("company", found).Msg("company matched legal-entity span")
	}
	return found
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CleanCompanyName drops bullet- and dash-delimited trailing fragments.
func CleanCompanyName(raw string) string {
	name := trailingBullet.ReplaceAllString(raw, "")
	name = trailingDash.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func (e *Extractor) acceptCompany(name string, set *types.CompanySet) bool {
	if runeLen(name) <= e.cal.MinCompanyLength {
		return false
	}
	if rejectedNames[strings.ToLower(name)] || allDigits.MatchString(name) {
		return false
	}
	return !set.Contains(name)
}

// mineCompanies searches the whole page text for employer phrases until the set is full.
func (e *Extractor) mineCompanies(pageText string, set *types.CompanySet) {
	for _, pattern := range []*regexp.Regexp{atCompanyPagePattern, legalEntityPattern} {
		for _, m := range pattern.FindAllStringSubmatch(pageText, -1) {
			name := strings.TrimSpace(m[1])
			if runeLen(name) <= e.cal.MinMinedCompanyChars || set.Contains(name) {
				continue
			}
			if containsAny(strings.ToLower(name), minedNameSkips) {
				continue
			}
			set.Add(name)
			e.logger.Debug().Str("company", name).Msg("company mined from page text")
			if set.Full() {
				return
			}
		}
	}
}
