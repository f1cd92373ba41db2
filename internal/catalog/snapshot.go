package catalog

import (
	"context"
	"fmt"
)

// Snapshot is an in-memory catalog keyed by id. It is built once and never
// mutated, so it is safe for concurrent readers.
type Snapshot struct {
	items      map[int64]MenuItem
	categories map[int64]AddonCategory
	addons     map[int64]Addon
}

var _ Reader = (*Snapshot)(nil)

// NewSnapshot builds a Snapshot and checks referential integrity: every
// category id a menu item or add-on points at must exist, and every
// category must have valid bounds.
func NewSnapshot(items []MenuItem, categories []AddonCategory, addons []Addon) (*Snapshot, error) {
	s := &Snapshot{
		items:      make(map[int64]MenuItem, len(items)),
		categories: make(map[int64]AddonCategory, len(categories)),
		addons:     make(map[int64]Addon, len(addons)),
	}

	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.categories[c.ID]; dup {
			return nil, fmt.Errorf("duplicate addon category id %d", c.ID)
		}
		s.categories[c.ID] = c
	}

	for _, a := range addons {
		if _, ok := s.categories[a.AddonCategoryID]; !ok {
			return nil, fmt.Errorf("addon %d: unknown addon category %d", a.ID, a.AddonCategoryID)
		}
		if _, dup := s.addons[a.ID]; dup {
			return nil, fmt.Errorf("duplicate addon id %d", a.ID)
		}
		s.addons[a.ID] = a
	}

	for _, it := range items {
		for _, cid := range it.AddonCategoryIDs {
			if _, ok := s.categories[cid]; !ok {
				return nil, fmt.Errorf("menu item %d: unknown addon category %d", it.ID, cid)
			}
		}
		if _, dup := s.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id %d", it.ID)
		}
		it.AddonCategoryIDs = append([]int64(nil), it.AddonCategoryIDs...)
		s.items[it.ID] = it
	}

	return s, nil
}

// GetMenuItem implements Reader.
func (s *Snapshot) GetMenuItem(_ context.Context, id int64) (ResolvedMenuItem, error) {
	it, ok := s.items[id]
	if !ok {
		return ResolvedMenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	if !it.Available {
		return ResolvedMenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrUnavailable)
	}

	res := ResolvedMenuItem{MenuItem: it}
	res.AddonCategoryIDs = append([]int64(nil), it.AddonCategoryIDs...)
	res.AddonCategories = make([]AddonCategory, 0, len(it.AddonCategoryIDs))
	for _, cid := range it.AddonCategoryIDs {
		res.AddonCategories = append(res.AddonCategories, s.categories[cid])
	}
	return res, nil
}

// GetAddon implements Reader.
func (s *Snapshot) GetAddon(_ context.Context, id int64) (ResolvedAddon, error) {
	a, ok := s.addons[id]
	if !ok {
		return ResolvedAddon{}, fmt.Errorf("addon %d: %w", id, ErrNotFound)
	}
	c := s.categories[a.AddonCategoryID]
	if !a.Active || !c.Active {
		return ResolvedAddon{}, fmt.Errorf("addon %d: %w", id, ErrUnavailable)
	}
	return ResolvedAddon{Addon: a, Category: c}, nil
}
