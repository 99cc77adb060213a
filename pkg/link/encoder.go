package link

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/menulink/pkg/errors"
)

// MenuPath is the path template appended to the base URL.
const MenuPath = "/restaurant/%s/menu"

// RestaurantContext supplies the restaurant a link belongs to.
// It replaces any ambient session lookup: callers inject it explicitly.
type RestaurantContext interface {
	RestaurantID() string
}

// Encoder builds Records. The zero value encodes relative URLs with UUIDv7 ids.
type Encoder struct {
	// BaseURL is prepended to the menu path (e.g. "https://menu.example.com").
	// Empty produces a path-only link.
	BaseURL string

	// NewID returns a unique record id. Defaults to a time-ordered UUIDv7.
	NewID func() string

	// Now returns the creation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewEncoder creates an Encoder for the given base URL.
func NewEncoder(baseURL string) *Encoder {
	return &Encoder{BaseURL: baseURL}
}

// Encode validates the input and builds a new Record.
// Validation failures return an ErrCodeInvalidInput error and no record.
func (e *Encoder) Encode(restaurantID string, scope Scope, tableLabel string, target *Target) (*Record, error) {
	tableLabel = strings.TrimSpace(tableLabel)

	u, err := BuildURL(e.BaseURL, restaurantID, scope, tableLabel, target)
	if err != nil {
		return nil, err
	}
	name, title := Labels(scope, tableLabel, target)

	rec := &Record{
		ID:         e.newID(),
		Scope:      scope,
		TableLabel: tableLabel,
		URL:        u,
		Name:       name,
		Title:      title,
		CreatedAt:  e.now(),
	}
	if scope.NeedsTarget() {
		t := *target
		rec.Target = &t
	}
	return rec, nil
}

// EncodeFor is Encode with the restaurant taken from rc.
func (e *Encoder) EncodeFor(rc RestaurantContext, scope Scope, tableLabel string, target *Target) (*Record, error) {
	if rc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "restaurant context is required")
	}
	return e.Encode(rc.RestaurantID(), scope, tableLabel, target)
}

// BuildURL returns the canonical deep link. It is a pure function of its
// arguments: table comes first, then the category or item filter.
func BuildURL(baseURL, restaurantID string, scope Scope, tableLabel string, target *Target) (string, error) {
	if err := validate(restaurantID, scope, tableLabel, target); err != nil {
		return "", err
	}
	tableLabel = strings.TrimSpace(tableLabel)

	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	fmt.Fprintf(&b, MenuPath, url.PathEscape(restaurantID))
	b.WriteString("?table=")
	b.WriteString(url.QueryEscape(tableLabel))
	if key := scope.queryKey(); key != "" {
		b.WriteString("&" + key + "=")
		b.WriteString(url.QueryEscape(target.ID))
	}
	return b.String(), nil
}

// Labels returns the short name and the printed title for a link.
func Labels(scope Scope, tableLabel string, target *Target) (name, title string) {
	table := "Table " + strings.TrimSpace(tableLabel)
	if !scope.NeedsTarget() || target == nil {
		return table, table
	}
	return fmt.Sprintf("%s (%s)", target.label(), table), fmt.Sprintf("%s - %s", table, target.label())
}

func validate(restaurantID string, scope Scope, tableLabel string, target *Target) error {
	if err := errors.ValidateRestaurantID(restaurantID); err != nil {
		return err
	}
	if err := errors.ValidateTableLabel(tableLabel); err != nil {
		return err
	}
	switch scope {
	case ScopeTable:
	case ScopeCategory, ScopeItem:
		if target == nil || strings.TrimSpace(target.ID) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "a %s is required for a %s link", scope, scope)
		}
	default:
		return errors.New(errors.ErrCodeInvalidScope, "invalid scope: %q", scope)
	}
	return nil
}

func (e *Encoder) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (e *Encoder) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
