package link

import "time"

// Target identifies the category or item a scoped link filters to.
type Target struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// label returns the display name, falling back to the id.
func (t *Target) label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.ID
}

// Record is a generated deep link. Records are never mutated after creation.
type Record struct {
	ID         string    `json:"id"`
	Scope      Scope     `json:"scope"`
	Target     *Target   `json:"target,omitempty"`
	TableLabel string    `json:"table_label"`
	URL        string    `json:"url"`
	Name       string    `json:"name"`  // short label, e.g. "Drinks (Table 5)"
	Title      string    `json:"title"` // printed label, e.g. "Table 5 - Drinks"
	CreatedAt  time.Time `json:"created_at"`
}
