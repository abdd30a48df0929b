package dto

import "time"

type VersionResponse struct {
	ID            string    `json:"id"`
	VersionName   string    `json:"version_name"`
	Slug          string    `json:"slug"`
	VersionNumber float64   `json:"version_number"`
	Status        string    `json:"status"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	IsCurrent     bool      `json:"is_current"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	CreatedByID   *string   `json:"createdById"`
	ModifiedBy    *string   `json:"modifiedBy"`
}
