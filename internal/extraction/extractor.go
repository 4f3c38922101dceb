package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/profile-scraper/internal/types"
	"github.com/rs/zerolog"
)

// Extractor pulls the profile fields out of one page at a time. It keeps no state between
// pages and performs no I/O, so repeated runs over the same markup give the same result.
type Extractor struct {
	logger   zerolog.Logger
	cal      Calibration
	rules    []ScoringRule
	name     Cascade
	headline Cascade
	about    Cascade
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCalibration overrides the length thresholds.
func WithCalibration(cal Calibration) Option {
	return func(e *Extractor) { e.cal = cal }
}

// WithScoringRules overrides the biography scoring table.
func WithScoringRules(rules []ScoringRule) Option {
	return func(e *Extractor) { e.rules = rules }
}

// WithCascade replaces the selector cascade for FieldName or FieldHeadline.
func WithCascade(c Cascade) Option {
	return func(e *Extractor) {
		switch c.Field {
		case FieldName:
			e.name = c
		case FieldHeadline:
			e.headline = c
		}
	}
}

// New creates an Extractor that reports strategy matches to logger.
func New(logger zerolog.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		logger:   logger.With().Str("component", "extraction").Logger(),
		cal:      DefaultCalibration(),
		rules:    DefaultScoringRules,
		name:     NameCascade(),
		headline: HeadlineCascade(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.about = e.aboutCascade()
	return e
}

// ParseDocument parses raw page markup. Markup that cannot be parsed yields an empty
// document, so every field comes back empty instead of failing.
func (e *Extractor) ParseDocument(rawHTML string) *goquery.Document {
	if strings.TrimSpace(rawHTML) == "" {
		e.logger.Debug().Err(ErrEmptyDocument).Msg("nothing to extract")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		e.logger.Warn().Err(&ParseError{Message: "failed to parse HTML", Cause: err}).Msg("treating page as empty")
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return doc
}

// Extract parses rawHTML and extracts all five fields.
func (e *Extractor) Extract(rawHTML string) types.ProfileFields {
	return e.ExtractDocument(e.ParseDocument(rawHTML))
}

// ExtractDocument extracts all five fields from a parsed page. Each field is resolved
// independently; an unresolved field is "".
func (e *Extractor) ExtractDocument(doc *goquery.Document) types.ProfileFields {
	companies := e.ExtractCompanies(doc)
	fields := types.ProfileFields{
		Name:            e.ExtractField(doc, FieldName),
		Headline:        e.ExtractField(doc, FieldHeadline),
		About:           e.ExtractScoredField(doc, FieldAbout),
		CurrentCompany:  companies.Current(),
		PreviousCompany: companies.Previous(),
	}
	e.logger.Debug().
		Str("current_company", fields.CurrentCompany).
		Str("previous_company", fields.PreviousCompany).
		Msg("companies resolved")
	return fields
}

// ExtractField runs the first-match cascade for FieldName or FieldHeadline.
func (e *Extractor) ExtractField(doc *goquery.Document, field Field) string {
	var c Cascade
	switch field {
	case FieldName:
		c = e.name
	case FieldHeadline:
		c = e.headline
	default:
		e.logger.Warn().Err(&FieldError{Field: field, Message: "no selector cascade registered"}).Msg("skipping field")
		return ""
	}
	return e.run(doc, c)
}

// ExtractScoredField resolves fields that have no reliable structural anchor: the biography
// and the two employer names.
func (e *Extractor) ExtractScoredField(doc *goquery.Document, field Field) string {
	switch field {
	case FieldAbout:
		return e.run(doc, e.about)
	case FieldCurrentCompany:
		companies := e.ExtractCompanies(doc)
		return companies.Current()
	case FieldPreviousCompany:
		companies := e.ExtractCompanies(doc)
		return companies.Previous()
	default:
		e.logger.Warn().Err(&FieldError{Field: field, Message: "no scored extractor registered"}).Msg("skipping field")
		return ""
	}
}

func (e *Extractor) run(doc *goquery.Document, c Cascade) string {
	text, strategy := c.Run(doc)
	if text == "" {
		e.logger.Debug().Str("field", string(c.Field)).Msg("field absent")
		return ""
	}
	e.logger.Debug().
		Str("field", string(c.Field)).
		Str("strategy", strategy).
		Int("chars", runeLen(text)).
		Msg("field matched")
	return text
}
