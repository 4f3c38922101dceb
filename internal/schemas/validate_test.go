package schemas

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/profile-scraper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRecordSchema_ValidJSON(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(ProfileRecordSchema), &schema))
	assert.Equal(t, "ProfileRecord", schema["title"])
}

func TestValidateRecord(t *testing.T) {
	scrapedAt := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	fields := types.ProfileFields{Name: "Jane Doe", CurrentCompany: "Acme Corp"}

	tests := []struct {
		name   string
		record types.ProfileRecord
	}{
		{"success", types.NewRecord("https://example.com/in/jane", fields, types.Success(), scrapedAt)},
		{"login wall", types.NewRecord("https://example.com/in/jane", types.ProfileFields{}, types.LoginWall(), scrapedAt)},
		{"error", types.NewRecord("https://example.com/in/jane", types.ProfileFields{}, types.Failed(strings.Repeat("é", 150)), scrapedAt)},
		{"multi-line error", types.NewRecord("https://example.com/in/jane", types.ProfileFields{}, types.Failed("line one\nline two"), scrapedAt)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ValidateRecord(tt.record)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"url": "https://example.com/in/jane"`)
		})
	}
}

func TestValidateRecordJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"missing fields", `{"url": "https://example.com/in/jane"}`, "(root)"},
		{"bad status", `{"url":"u","name":"","headline":"","about":"","current_company":"","previous_company":"","status":"done","scraped_at":"2024-03-09T14:05:07Z"}`, "status"},
		{"bad timestamp", `{"url":"u","name":"","headline":"","about":"","current_company":"","previous_company":"","status":"success","scraped_at":"yesterday"}`, "scraped_at"},
		{"empty url", `{"url":"","name":"","headline":"","about":"","current_company":"","previous_company":"","status":"success","scraped_at":"2024-03-09T14:05:07Z"}`, "url"},
		{"extra field", `{"url":"u","name":"","headline":"","about":"","current_company":"","previous_company":"","status":"success","scraped_at":"2024-03-09T14:05:07Z","email":"x"}`, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordJSON([]byte(tt.json))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Violations)
			assert.Equal(t, tt.field, validationErr.Violations[0].Field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "schema", loadErr.What)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(ProfileRecordSchema, `{not json`)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "document", loadErr.What)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Field: "status", Message: "Does not match pattern"},
		{Field: "url", Message: "String length must be greater than or equal to 1"},
	}}
	assert.Equal(t,
		"validation failed (2): status: Does not match pattern; url: String length must be greater than or equal to 1",
		err.Error())
}
