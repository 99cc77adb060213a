package link

import (
	"strings"

	"github.com/matzehuels/menulink/pkg/errors"
)

// Scope selects how much of the menu a deep link opens.
type Scope string

const (
	ScopeTable    Scope = "table"    // whole menu at a table
	ScopeCategory Scope = "category" // one category
	ScopeItem     Scope = "item"     // one item
)

// Scopes lists every valid scope in display order.
var Scopes = []Scope{ScopeTable, ScopeCategory, ScopeItem}

// ParseScope converts a user-supplied string into a Scope.
// Matching is case-insensitive; an empty string means ScopeTable.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "menu":
		return ScopeTable, nil
	case "category":
		return ScopeCategory, nil
	case "item":
		return ScopeItem, nil
	}
	return "", errors.New(errors.ErrCodeInvalidScope, "invalid scope: %q (must be one of: table, category, item)", s)
}

// NeedsTarget reports whether the scope filters to a category or item.
func (s Scope) NeedsTarget() bool {
	return s == ScopeCategory || s == ScopeItem
}

// queryKey is the filter parameter name for scoped links.
func (s Scope) queryKey() string {
	switch s {
	case ScopeCategory:
		return "category"
	case ScopeItem:
		return "item"
	}
	return ""
}
