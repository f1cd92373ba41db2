// Package order holds the order core: line composition against the
// catalog, pricing, and the status state machine.
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kiwari-pos/digimenu/internal/catalog"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity accepted on a single line.
const MaxQuantity = 1000

// MaxAmount is the largest line total or subtotal that fits the stored
// NUMERIC(12,2) columns.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// LineRequest is one client-submitted order line.
type LineRequest struct {
	MenuItemID int64
	Quantity   int
	Notes      string
	AddonIDs   []int64
}

// Line is a validated, priced order line. UnitPrice and LineTotal are
// snapshots taken at composition time.
type Line struct {
	Position  int
	MenuItem  catalog.MenuItem
	Quantity  int
	Notes     string
	Addons    []catalog.Addon
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Composer validates order lines against a catalog.
type Composer struct {
	catalog catalog.Reader
}

// NewComposer creates a Composer reading from r.
func NewComposer(r catalog.Reader) *Composer {
	return &Composer{catalog: r}
}

// Compose validates and prices every line and fails on the first error.
// Menu items for all lines are resolved before any add-on is looked at,
// so an unavailable item is reported ahead of selection errors on other
// lines.
func (c *Composer) Compose(ctx context.Context, reqs []LineRequest) ([]Line, error) {
	if len(reqs) == 0 {
		return nil, &Error{Kind: KindEmptyOrder, Field: "items", Msg: "items are required"}
	}

	items := make([]catalog.ResolvedMenuItem, len(reqs))
	for i, req := range reqs {
		item, err := c.catalog.GetMenuItem(ctx, req.MenuItemID)
		if err != nil {
			return nil, lookupError(fmt.Sprintf("items[%d].menu_item_id", i), "menu item", req.MenuItemID, err)
		}
		items[i] = item
	}

	lines := make([]Line, 0, len(reqs))
	subtotal := decimal.Zero
	for i, req := range reqs {
		line, err := c.composeLine(ctx, i, req, items[i])
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(line.LineTotal)
		lines = append(lines, line)
	}
	if subtotal.GreaterThan(MaxAmount) {
		return nil, invalidRequest("items", fmt.Sprintf("order subtotal exceeds %s", MaxAmount.StringFixed(2)))
	}
	return lines, nil
}

func (c *Composer) composeLine(ctx context.Context, idx int, req LineRequest, item catalog.ResolvedMenuItem) (Line, error) {
	prefix := fmt.Sprintf("items[%d]", idx)

	if req.Quantity < 1 {
		return Line{}, invalidRequest(prefix+".quantity", "quantity must be >= 1")
	}
	if req.Quantity > MaxQuantity {
		return Line{}, invalidRequest(prefix+".quantity", fmt.Sprintf("quantity must be <= %d", MaxQuantity))
	}

	// addons, as a set in first-seen order
	addonIDs := dedupe(req.AddonIDs)
	addons := make([]catalog.ResolvedAddon, 0, len(addonIDs))
	for _, id := range addonIDs {
		a, err := c.catalog.GetAddon(ctx, id)
		if err != nil {
			return Line{}, lookupError(prefix+".addon_ids", "addon", id, err)
		}
		addons = append(addons, a)
	}

	counts := make(map[int64]int, len(addons))
	for _, a := range addons {
		counts[a.AddonCategoryID]++
	}

	// selection bounds for every associated category
	associated := make(map[int64]bool, len(item.AddonCategories))
	for _, cat := range item.AddonCategories {
		associated[cat.ID] = true
		if !cat.Active {
			continue
		}
		if n := counts[cat.ID]; !cat.Allows(n) {
			return Line{}, &Error{
				Kind:     KindAddonSelectionInvalid,
				Field:    prefix + ".addon_ids",
				EntityID: strconv.FormatInt(cat.ID, 10),
				Min:      cat.MinSelection,
				Max:      cat.MaxSelection,
				Msg: fmt.Sprintf("addon category %q requires between %d and %d selections, got %d",
					cat.Name, cat.MinSelection, cat.MaxSelection, n),
			}
		}
	}

	// every addon must come from an associated category
	for _, a := range addons {
		if !associated[a.AddonCategoryID] {
			return Line{}, &Error{
				Kind:     KindAddonNotApplicable,
				Field:    prefix + ".addon_ids",
				EntityID: strconv.FormatInt(a.ID, 10),
				Msg: fmt.Sprintf("addon %d (%s) is not offered for menu item %d",
					a.ID, a.Name, item.ID),
			}
		}
	}

	// price snapshot
	unit := item.Price
	selected := make([]catalog.Addon, 0, len(addons))
	for _, a := range addons {
		unit = unit.Add(a.Price)
		selected = append(selected, a.Addon)
	}

	total := unit.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if total.GreaterThan(MaxAmount) {
		return Line{}, invalidRequest(prefix+".quantity", fmt.Sprintf("line total exceeds %s", MaxAmount.StringFixed(2)))
	}

	return Line{
		Position:  idx,
		MenuItem:  item.MenuItem,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		Addons:    selected,
		UnitPrice: unit,
		LineTotal: total,
	}, nil
}

func lookupError(field, entity string, id int64, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return &Error{
			Kind:     KindNotFound,
			Field:    field,
			EntityID: strconv.FormatInt(id, 10),
			Msg:      fmt.Sprintf("%s %d not found", entity, id),
		}
	case errors.Is(err, catalog.ErrUnavailable):
		return &Error{
			Kind:     KindUnavailable,
			Field:    field,
			EntityID: strconv.FormatInt(id, 10),
			Msg:      fmt.Sprintf("%s %d is unavailable", entity, id),
		}
	}
	return StorageError("get "+entity, err)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
