package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versionPayload struct {
	Name          string   `json:"version_name" validate:"required,min=1,max=50"`
	Slug          string   `json:"slug" validate:"required,min=1,max=50,slug"`
	VersionNumber *float64 `json:"version_number" validate:"required,min=0,max=99,onedecimal"`
	StartDate     string   `json:"start_date" validate:"required,date"`
	EndDate       string   `json:"end_date" validate:"required,date"`
}

func (p versionPayload) DateRange() (*string, *string) {
	return &p.StartDate, &p.EndDate
}

type patchPayload struct {
	StartDate *string `json:"start_date" validate:"omitempty,date"`
	EndDate   *string `json:"end_date" validate:"omitempty,date"`
}

func (p patchPayload) DateRange() (*string, *string) {
	return p.StartDate, p.EndDate
}

func number(v float64) *float64 { return &v }
func str(v string) *string      { return &v }

func validPayload() versionPayload {
	return versionPayload{
		Name:          "Edition 5",
		Slug:          "edition-5",
		VersionNumber: number(5.0),
		StartDate:     "2025-01-01",
		EndDate:       "2025-01-03",
	}
}

func TestValidateVersionPayload(t *testing.T) {
	v := New(versionPayload{}, patchPayload{})

	testCases := []struct {
		Name          string
		Mutate        func(p *versionPayload)
		ExpectedField string
		ExpectedTag   string
	}{
		{Name: "valid", Mutate: func(p *versionPayload) {}},
		{Name: "zero version number is allowed", Mutate: func(p *versionPayload) { p.VersionNumber = number(0) }},
		{Name: "missing name", Mutate: func(p *versionPayload) { p.Name = "" }, ExpectedField: "version_name", ExpectedTag: "required"},
		{Name: "slug with uppercase", Mutate: func(p *versionPayload) { p.Slug = "Edition-5" }, ExpectedField: "slug", ExpectedTag: "slug"},
		{Name: "slug with spaces", Mutate: func(p *versionPayload) { p.Slug = "edition 5" }, ExpectedField: "slug", ExpectedTag: "slug"},
		{Name: "missing version number", Mutate: func(p *versionPayload) { p.VersionNumber = nil }, ExpectedField: "version_number", ExpectedTag: "required"},
		{Name: "version number too large", Mutate: func(p *versionPayload) { p.VersionNumber = number(100) }, ExpectedField: "version_number", ExpectedTag: "max"},
		{Name: "negative version number", Mutate: func(p *versionPayload) { p.VersionNumber = number(-1) }, ExpectedField: "version_number", ExpectedTag: "min"},
		{Name: "two decimal places", Mutate: func(p *versionPayload) { p.VersionNumber = number(5.25) }, ExpectedField: "version_number", ExpectedTag: "onedecimal"},
		{Name: "unparseable date", Mutate: func(p *versionPayload) { p.EndDate = "soon" }, ExpectedField: "end_date", ExpectedTag: "date"},
		{Name: "end equals start", Mutate: func(p *versionPayload) { p.EndDate = p.StartDate }, ExpectedField: "start_date", ExpectedTag: "before_end_date"},
		{Name: "end before start", Mutate: func(p *versionPayload) { p.EndDate = "2024-12-31" }, ExpectedField: "start_date", ExpectedTag: "before_end_date"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			p := validPayload()
			tc.Mutate(&p)

			err := v.Validate(p)
			if tc.ExpectedField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			details := Details(err)
			require.NotEmpty(t, details)
			assert.Equal(t, tc.ExpectedField, details[0].Field)
			assert.Equal(t, tc.ExpectedTag, details[0].Tag)
			assert.NotEmpty(t, details[0].Message)
		})
	}
}

func TestValidatePatchPayload(t *testing.T) {
	v := New(versionPayload{}, patchPayload{})

	assert.NoError(t, v.Validate(patchPayload{}))
	assert.NoError(t, v.Validate(patchPayload{StartDate: str("2025-05-01")}))
	assert.NoError(t, v.Validate(patchPayload{EndDate: str("2020-01-01")}))
	assert.NoError(t, v.Validate(patchPayload{StartDate: str("2025-01-01"), EndDate: str("2025-01-02")}))

	err := v.Validate(patchPayload{StartDate: str("2025-01-02"), EndDate: str("2025-01-02")})
	require.Error(t, err)
	assert.Equal(t, "before_end_date", Details(err)[0].Tag)
}

func TestDetailsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Details(assert.AnError))
}
