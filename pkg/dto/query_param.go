package dto

type Filter struct {
	Limit     int    `query:"limit"`
	Page      int    `query:"page"`
	TableName string `query:"table_name"`
	RecordID  string `query:"record_id"`
	Scope     string `query:"scope"`
	Action    string `query:"action"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize fills in the default page and clamps the page size.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}

	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
