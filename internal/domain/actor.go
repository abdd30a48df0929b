package domain

// Actor identifies who triggered an operation and from where.
type Actor struct {
	ID        string
	IPAddress string
}

// Name is the value written to audit_logs.changed_by.
func (a Actor) Name() string {
	if a.ID == "" {
		return SystemActor
	}

	return a.ID
}

// Ref is the value written to the created_by_id and modified_by columns.
func (a Actor) Ref() *string {
	return ActorRef(a.ID)
}
