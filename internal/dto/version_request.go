package dto

// VersionRequest is the create payload. Status and IsCurrent are accepted for
// compatibility but the server always assigns them.
type VersionRequest struct {
	VersionName   string   `json:"version_name" validate:"required,min=1,max=50"`
	Slug          string   `json:"slug" validate:"required,min=1,max=50,slug"`
	VersionNumber *float64 `json:"version_number" validate:"required,min=0,max=99,onedecimal"`
	Status        *string  `json:"status" validate:"omitempty,oneof=draft active archived"`
	StartDate     string   `json:"start_date" validate:"required,date"`
	EndDate       string   `json:"end_date" validate:"required,date"`
	IsCurrent     *bool    `json:"is_current"`
}

// VersionPatchRequest only changes the fields that are present.
type VersionPatchRequest struct {
	VersionName   *string  `json:"version_name" validate:"omitempty,min=1,max=50"`
	Slug          *string  `json:"slug" validate:"omitempty,min=1,max=50,slug"`
	VersionNumber *float64 `json:"version_number" validate:"omitempty,min=0,max=99,onedecimal"`
	Status        *string  `json:"status" validate:"omitempty,oneof=draft active archived"`
	StartDate     *string  `json:"start_date" validate:"omitempty,date"`
	EndDate       *string  `json:"end_date" validate:"omitempty,date"`
	IsCurrent     *bool    `json:"is_current"`
}

func (r VersionRequest) DateRange() (*string, *string) {
	return &r.StartDate, &r.EndDate
}

func (r VersionPatchRequest) DateRange() (*string, *string) {
	return r.StartDate, r.EndDate
}
