package extraction

// Calibration holds the length thresholds used by the staged extractors.
// The defaults are empirically tuned and may be revised as page markup changes.
type Calibration struct {
	AnchorMinLength      int // biography stage 1, strict "greater than"
	SelectorMinLength    int // biography stage 2
	SectionMinLength     int // biography stage 3
	SectionLookahead     int // containers inspected per hit in stage 3, the hit included
	CandidateMinLength   int // biography stage 4
	LongCandidateLength  int // stage 4 bonus threshold
	SentenceWindow       int // leading characters checked for employment sentences
	LabelWindow          int // leading characters checked for section labels in stage 2
	BioNodeMinLength     int // biography stage 5
	BioSignalMinMatches  int // stage 5 vocabulary hits required
	MaxExperienceItems   int // employer items examined
	MinCompanyLength     int // cleaned employer name, strict "greater than"
	MinMinedCompanyChars int // whole-page mined employer name, strict "greater than"
}

// DefaultCalibration returns the tuned thresholds.
func DefaultCalibration() Calibration {
	return Calibration{
		AnchorMinLength:      50,
		SelectorMinLength:    100,
		SectionMinLength:     100,
		SectionLookahead:     3,
		CandidateMinLength:   150,
		LongCandidateLength:  300,
		SentenceWindow:       100,
		LabelWindow:          50,
		BioNodeMinLength:     200,
		BioSignalMinMatches:  2,
		MaxExperienceItems:   10,
		MinCompanyLength:     2,
		MinMinedCompanyChars: 3,
	}
}
