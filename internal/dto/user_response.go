package dto

const (
	SeedStatusSeeded  = "seeded"
	SeedStatusSkipped = "skipped"
	SeedStatusFailed  = "failed"
)

type SeedResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Email   string `json:"email"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}
