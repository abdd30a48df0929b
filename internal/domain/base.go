package domain

import (
	"time"

	"github.com/google/uuid"
)

const SystemActor = "system"

// Base carries the identity, timestamp and actor columns shared by every table.
type Base struct {
	ID          string    `db:"id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	CreatedByID *string   `db:"created_by_id"`
	ModifiedBy  *string   `db:"modified_by"`
}

// ActorRef returns the actor as a column value. Only user ids are stored; the
// system pseudo-actor and anything that is not a UUID become NULL.
func ActorRef(actorID string) *string {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil
	}

	return &actorID
}
