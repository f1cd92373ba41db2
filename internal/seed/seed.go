// Package seed loads a catalog fixture from YAML and writes it to the
// database. Entities in the fixture reference each other by key; database
// ids are assigned on insert.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/money"
	"github.com/kiwari-pos/digimenu/internal/promotion"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document.
type Fixture struct {
	Categories      []Category      `yaml:"categories"`
	AddonCategories []AddonCategory `yaml:"addon_categories"`
	MenuItems       []MenuItem      `yaml:"menu_items"`
	Promotions      []Promotion     `yaml:"promotions"`
}

type Category struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type AddonCategory struct {
	Key    string  `yaml:"key"`
	Name   string  `yaml:"name"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
	Addons []Addon `yaml:"addons"`
}

type Addon struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

type MenuItem struct {
	Name            string   `yaml:"name"`
	Category        string   `yaml:"category"`
	Description     string   `yaml:"description"`
	Price           string   `yaml:"price"`
	Unavailable     bool     `yaml:"unavailable"`
	AddonCategories []string `yaml:"addon_categories"`
}

type Promotion struct {
	Name       string    `yaml:"name"`
	Percentage string    `yaml:"percentage"`
	Amount     string    `yaml:"amount"`
	Start      time.Time `yaml:"start"`
	End        time.Time `yaml:"end"`
}

// Store defines the DB methods needed to write a fixture.
// Satisfied by *database.Queries.
type Store interface {
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	CreateAddonCategory(ctx context.Context, arg database.CreateAddonCategoryParams) (database.AddonCategory, error)
	CreateAddon(ctx context.Context, arg database.CreateAddonParams) (database.Addon, error)
	LinkMenuItemAddonCategory(ctx context.Context, arg database.LinkMenuItemAddonCategoryParams) error
	CreatePromotion(ctx context.Context, arg database.CreatePromotionParams) (database.Promotion, error)
}

// Result counts the rows written.
type Result struct {
	Categories      int
	MenuItems       int
	AddonCategories int
	Addons          int
	Promotions      int
}

// Load reads and validates the fixture at path.
func Load(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a fixture.
func Parse(b []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks keys, prices, selection bounds and promotion rules
// without touching the database.
func (f *Fixture) Validate() error {
	cats := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		if c.Key == "" || c.Name == "" {
			return fmt.Errorf("category %q: key and name are required", c.Key)
		}
		if cats[c.Key] {
			return fmt.Errorf("duplicate category key %q", c.Key)
		}
		cats[c.Key] = true
	}

	addonCats := make(map[string]bool, len(f.AddonCategories))
	for _, ac := range f.AddonCategories {
		if ac.Key == "" || ac.Name == "" {
			return fmt.Errorf("addon category %q: key and name are required", ac.Key)
		}
		if addonCats[ac.Key] {
			return fmt.Errorf("duplicate addon category key %q", ac.Key)
		}
		addonCats[ac.Key] = true

		if ac.Min < 0 || ac.Max < ac.Min {
			return fmt.Errorf("addon category %q: need 0 <= min (%d) <= max (%d)", ac.Key, ac.Min, ac.Max)
		}
		for _, a := range ac.Addons {
			if _, err := parsePrice(a.Price); err != nil {
				return fmt.Errorf("addon %q: %w", a.Name, err)
			}
		}
	}

	for _, it := range f.MenuItems {
		if !cats[it.Category] {
			return fmt.Errorf("menu item %q: unknown category %q", it.Name, it.Category)
		}
		if _, err := parsePrice(it.Price); err != nil {
			return fmt.Errorf("menu item %q: %w", it.Name, err)
		}
		for _, key := range it.AddonCategories {
			if !addonCats[key] {
				return fmt.Errorf("menu item %q: unknown addon category %q", it.Name, key)
			}
		}
	}

	for _, p := range f.Promotions {
		if _, err := p.build(); err != nil {
			return fmt.Errorf("promotion %q: %w", p.Name, err)
		}
	}
	return nil
}

// Apply writes the fixture through q. Run it inside a transaction; a
// failure part way leaves earlier inserts behind otherwise.
func Apply(ctx context.Context, q Store, f *Fixture) (Result, error) {
	var res Result

	catIDs := make(map[string]int64, len(f.Categories))
	for i, c := range f.Categories {
		row, err := q.CreateCategory(ctx, database.CreateCategoryParams{Name: c.Name, SortOrder: int32(i)})
		if err != nil {
			return res, fmt.Errorf("create category %q: %w", c.Key, err)
		}
		catIDs[c.Key] = row.ID
		res.Categories++
	}

	addonCatIDs := make(map[string]int64, len(f.AddonCategories))
	for i, ac := range f.AddonCategories {
		row, err := q.CreateAddonCategory(ctx, database.CreateAddonCategoryParams{
			Name:         ac.Name,
			MinSelection: int32(ac.Min),
			MaxSelection: int32(ac.Max),
			SortOrder:    int32(i),
		})
		if err != nil {
			return res, fmt.Errorf("create addon category %q: %w", ac.Key, err)
		}
		addonCatIDs[ac.Key] = row.ID
		res.AddonCategories++

		for j, a := range ac.Addons {
			price, _ := parsePrice(a.Price)
			if _, err := q.CreateAddon(ctx, database.CreateAddonParams{
				AddonCategoryID: row.ID,
				Name:            a.Name,
				Price:           money.ToNumeric(price),
				SortOrder:       int32(j),
			}); err != nil {
				return res, fmt.Errorf("create addon %q: %w", a.Name, err)
			}
			res.Addons++
		}
	}

	for i, it := range f.MenuItems {
		price, _ := parsePrice(it.Price)
		row, err := q.CreateMenuItem(ctx, database.CreateMenuItemParams{
			CategoryID:  catIDs[it.Category],
			Name:        it.Name,
			Description: pgtype.Text{String: it.Description, Valid: it.Description != ""},
			Price:       money.ToNumeric(price),
			IsAvailable: !it.Unavailable,
			SortOrder:   int32(i),
		})
		if err != nil {
			return res, fmt.Errorf("create menu item %q: %w", it.Name, err)
		}
		res.MenuItems++

		for j, key := range it.AddonCategories {
			if err := q.LinkMenuItemAddonCategory(ctx, database.LinkMenuItemAddonCategoryParams{
				MenuItemID:      row.ID,
				AddonCategoryID: addonCatIDs[key],
				SortOrder:       int32(j),
			}); err != nil {
				return res, fmt.Errorf("link menu item %q to %q: %w", it.Name, key, err)
			}
		}
	}

	for _, p := range f.Promotions {
		promo, _ := p.build()
		if _, err := q.CreatePromotion(ctx, promotion.ToParams(promo)); err != nil {
			return res, fmt.Errorf("create promotion %q: %w", p.Name, err)
		}
		res.Promotions++
	}

	return res, nil
}

func (p Promotion) build() (promotion.Promotion, error) {
	params := promotion.Params{
		Name:      p.Name,
		StartDate: p.Start,
		EndDate:   p.End,
		Active:    true,
	}
	if p.Percentage != "" {
		d, err := decimal.NewFromString(p.Percentage)
		if err != nil {
			return promotion.Promotion{}, fmt.Errorf("percentage: %w", err)
		}
		params.Percentage = &d
	}
	if p.Amount != "" {
		d, err := money.Parse(p.Amount)
		if err != nil {
			return promotion.Promotion{}, fmt.Errorf("amount: %w", err)
		}
		params.Amount = &d
	}
	return promotion.New(params)
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("price %q must be >= 0", s)
	}
	return d, nil
}
