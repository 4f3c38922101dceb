package extraction

import (
	"strings"

	"github.com/jonathan/profile-scraper/internal/types"
)

// Candidate is a biography text fragment together with the markup of its parent element.
type Candidate struct {
	Text         string
	ParentMarkup string // lower-cased outer HTML of the parent element
}

// ScoringRule adjusts a candidate's score by Weight when Applies reports true.
type ScoringRule struct {
	Name    string
	Weight  int
	Applies func(c Candidate, cal Calibration) bool
}

var (
	sectionLabels       = []string{"experience", "education", "skills"}
	employmentSentences = []string{"experience at", "currently working"}
	educationKeywords   = []string{"education", "university", "degree"}
)

// DefaultScoringRules is the signal table used by the global candidate stage.
var DefaultScoringRules = []ScoringRule{
	{
		Name:   "about-ancestor",
		Weight: 3,
		Applies: func(c Candidate, _ Calibration) bool {
			return strings.Contains(c.ParentMarkup, "about")
		},
	},
	{
		Name:   "summary-ancestor",
		Weight: 2,
		Applies: func(c Candidate, _ Calibration) bool {
			return strings.Contains(c.ParentMarkup, "summary")
		},
	},
	{
		Name:   "long-text",
		Weight: 1,
		Applies: func(c Candidate, cal Calibration) bool {
			return runeLen(c.Text) > cal.LongCandidateLength
		},
	},
	{
		Name:   "employment-sentence",
		Weight: -3,
		Applies: func(c Candidate, cal Calibration) bool {
			return containsAny(strings.ToLower(prefix(c.Text, cal.SentenceWindow)), employmentSentences)
		},
	},
	{
		Name:   "education-keywords",
		Weight: -2,
		Applies: func(c Candidate, _ Calibration) bool {
			return containsAny(strings.ToLower(c.Text), educationKeywords)
		},
	},
	{
		Name:   "section-label-prefix",
		Weight: -3,
		Applies: func(c Candidate, _ Calibration) bool {
			return hasAnyPrefix(strings.ToLower(c.Text), sectionLabels)
		},
	},
}

// Score sums the weights of every rule that applies to c, starting from zero.
func Score(rules []ScoringRule, c Candidate, cal Calibration) int {
	score := 0
	for _, r := range rules {
		if r.Applies != nil && r.Applies(c, cal) {
			score += r.Weight
		}
	}
	return score
}

// BestCandidate returns the highest scoring candidate with a positive score.
// Ties go to the candidate seen first.
func BestCandidate(candidates []types.ScoredCandidate) (types.ScoredCandidate, bool) {
	var best types.ScoredCandidate
	found := false
	for _, c := range candidates {
		if c.Score <= 0 {
			continue
		}
		if !found || c.Score > best.Score {
			best = c
			found = true
		}
	}
	return best, found
}
