package extraction

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jonathan/profile-scraper/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func fullProfile(bio string) string {
	return fmt.Sprintf(`<html>
<head><title>Jane Doe | Profile</title><script>var about = "ignored";</script></head>
<body><main>
	<section class="pv-top-card">
		<h1 class="text-heading-xlarge">Jane Doe</h1>
		<div class="text-body-medium break-words">Platform Engineer at Acme Corp</div>
	</section>
	<section>
		<div id="about"></div>
		<div class="display-flex"><span>%s</span></div>
	</section>
	<section>
		<div id="experience"></div>
		<ul>
			<li class="pvs-list__paged-list-item"><span>Platform Engineer</span><span class="t-14 t-normal"><span aria-hidden="true">Acme Corp · Full-time</span></span></li>
			<li class="pvs-list__paged-list-item"><span>Developer</span><span class="t-14 t-normal"><span aria-hidden="true">Beta LLC · Full-time</span></span></li>
		</ul>
	</section>
</main></body></html>`, bio)
}

func TestExtract_FullProfile(t *testing.T) {
	bio := textOfLength(120)

	got := newTestExtractor().Extract(fullProfile(bio))

	assert.Equal(t, types.ProfileFields{
		Name:            "Jane Doe",
		Headline:        "Platform Engineer at Acme Corp",
		About:           bio,
		CurrentCompany:  "Acme Corp",
		PreviousCompany: "Beta LLC",
	}, got)
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor()
	page := fullProfile(textOfLength(150))

	first := e.Extract(page)
	second := e.Extract(page)
	assert.Equal(t, first, second)
}

func TestExtract_EmptyPage(t *testing.T) {
	got := newTestExtractor().Extract(`<html><body><p>Nothing to see.</p></body></html>`)
	assert.Equal(t, types.ProfileFields{}, got)
}

func TestExtract_MalformedMarkup(t *testing.T) {
	tests := []string{
		"",
		"<<<not html",
		"<div><span>unclosed",
		"</p></div></body>",
	}

	for _, page := range tests {
		t.Run(fmt.Sprintf("%q", page), func(t *testing.T) {
			assert.Equal(t, types.ProfileFields{}, newTestExtractor().Extract(page))
		})
	}
}

func TestExtractScoredField_UnknownField(t *testing.T) {
	doc := parse(t, `<html><body><h1>Jane</h1></body></html>`)
	assert.Empty(t, newTestExtractor().ExtractScoredField(doc, FieldName))
}

func TestParseDocument(t *testing.T) {
	doc := newTestExtractor().ParseDocument(`<html><body><h1>Jane</h1></body></html>`)
	assert.Equal(t, "Jane", doc.Find("h1").Text())
}

func TestParseDocument_EmptyInputLogged(t *testing.T) {
	var buf bytes.Buffer
	e := New(zerolog.New(&buf).Level(zerolog.DebugLevel))

	fields := e.Extract("   \n")

	assert.Equal(t, types.ProfileFields{}, fields)
	assert.Contains(t, buf.String(), ErrEmptyDocument.Error())
}

func TestParseError(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &ParseError{Message: "failed to parse HTML", Cause: cause}

	assert.Equal(t, "parse error: failed to parse HTML: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "parse error: empty", (&ParseError{Message: "empty"}).Error())
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "nickname", Message: "no selector cascade registered"}
	assert.Equal(t, "field nickname: no selector cascade registered", err.Error())
}
