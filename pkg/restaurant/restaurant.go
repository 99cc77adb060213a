// Package restaurant holds the restaurant context and the menu catalog that
// deep links point into.
//
// A [Context] is injected wherever links are encoded or images composited;
// nothing in menulink reads it from global state.
package restaurant

import (
	"strings"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
)

// Context identifies the restaurant and its branding.
type Context struct {
	ID   string `toml:"id" json:"id"`
	Name string `toml:"name" json:"name,omitempty"`
	Logo string `toml:"logo" json:"logo,omitempty"` // URL or local path
}

// RestaurantID implements link.RestaurantContext.
func (c Context) RestaurantID() string { return c.ID }

// LogoRef returns the branding logo reference, empty when unset.
func (c Context) LogoRef() string { return strings.TrimSpace(c.Logo) }

// Validate checks that the context can be used to encode links.
func (c Context) Validate() error {
	return errors.ValidateRestaurantID(c.ID)
}

// Entry is a named menu entity.
type Entry struct {
	ID       string `toml:"id" json:"id"`
	Name     string `toml:"name" json:"name"`
	Category string `toml:"category,omitempty" json:"category,omitempty"` // items only
}

// Target converts the entry into a link target.
func (e Entry) Target() *link.Target {
	return &link.Target{ID: e.ID, DisplayName: e.Name}
}

// Catalog lists the categories and items a link can be scoped to.
type Catalog struct {
	Categories []Entry `toml:"categories" json:"categories"`
	Items      []Entry `toml:"items" json:"items"`
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (*link.Target, error) {
	return find(c.Categories, id, "category")
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (*link.Target, error) {
	return find(c.Items, id, "item")
}

// Target resolves id for scope. Table scope needs no target and returns nil.
// An id missing from the catalog is accepted as-is, with the id doubling as
// the display name, unless strict is set.
func (c *Catalog) Target(scope link.Scope, id string, strict bool) (*link.Target, error) {
	if !scope.NeedsTarget() {
		return nil, nil
	}
	var (
		t   *link.Target
		err error
	)
	if scope == link.ScopeCategory {
		t, err = c.Category(id)
	} else {
		t, err = c.Item(id)
	}
	if err == nil {
		return t, nil
	}
	if strict || strings.TrimSpace(id) == "" {
		return nil, err
	}
	return &link.Target{ID: strings.TrimSpace(id)}, nil
}

// Targets returns every target for scope in catalog order.
func (c *Catalog) Targets(scope link.Scope) []*link.Target {
	var entries []Entry
	switch scope {
	case link.ScopeCategory:
		entries = c.Categories
	case link.ScopeItem:
		entries = c.Items
	default:
		return nil
	}
	out := make([]*link.Target, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Target())
	}
	return out
}

// Validate rejects blank or duplicate ids.
func (c *Catalog) Validate() error {
	for kind, entries := range map[string][]Entry{"category": c.Categories, "item": c.Items} {
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			id := strings.TrimSpace(e.ID)
			if id == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "%s with empty id", kind)
			}
			if seen[id] {
				return errors.New(errors.ErrCodeInvalidConfig, "duplicate %s id %q", kind, id)
			}
			seen[id] = true
		}
	}
	return nil
}

func find(entries []Entry, id, kind string) (*link.Target, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s id is required", kind)
	}
	for _, e := range entries {
		if e.ID == id {
			return e.Target(), nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "%s %q not in catalog", kind, id)
}

var _ link.RestaurantContext = Context{}
