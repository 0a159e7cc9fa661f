package model

const (
	// DefaultLimit is used when a list request does not set limit.
	DefaultLimit = 100
)

// Page selects a window of an ordered result set.
type Page struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// DefaultPage returns the first DefaultLimit records.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Normalize clamps negative skip to zero and a non-positive limit to DefaultLimit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}
