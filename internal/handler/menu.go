package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/money"
	"github.com/sirupsen/logrus"
)

// MenuStore defines the database methods needed to render the public menu.
// Satisfied by *database.Queries.
type MenuStore interface {
	ListCategories(ctx context.Context) ([]database.Category, error)
	ListAvailableMenuItems(ctx context.Context) ([]database.MenuItem, error)
	ListActiveAddonCategories(ctx context.Context) ([]database.AddonCategory, error)
	ListActiveAddons(ctx context.Context) ([]database.Addon, error)
	ListMenuItemAddonCategoryLinks(ctx context.Context) ([]database.MenuItemAddonCategory, error)
}

// MenuHandler serves the read-only catalog.
type MenuHandler struct {
	store MenuStore
	log   logrus.FieldLogger
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, logger logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{store: store, log: logger}
}

// RegisterRoutes registers GET / on the given router, mounted at /menu.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
}

type menuResponse struct {
	Categories []menuCategoryResponse `json:"categories"`
}

type menuCategoryResponse struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Items []menuItemResponse `json:"items"`
}

type menuItemResponse struct {
	ID              int64                   `json:"id"`
	Name            string                  `json:"name"`
	Description     *string                 `json:"description"`
	Price           string                  `json:"price"`
	AddonCategories []addonCategoryResponse `json:"addon_categories"`
}

type addonCategoryResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	MinSelection int32           `json:"min_selection"`
	MaxSelection int32           `json:"max_selection"`
	Addons       []addonResponse `json:"addons"`
}

type addonResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Get handles GET /menu. Only active categories, available items, active
// add-on categories and active add-ons appear.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		writeInternalError(w, h.log, "list categories", err)
		return
	}
	items, err := h.store.ListAvailableMenuItems(ctx)
	if err != nil {
		writeInternalError(w, h.log, "list menu items", err)
		return
	}
	addonCats, err := h.store.ListActiveAddonCategories(ctx)
	if err != nil {
		writeInternalError(w, h.log, "list addon categories", err)
		return
	}
	addons, err := h.store.ListActiveAddons(ctx)
	if err != nil {
		writeInternalError(w, h.log, "list addons", err)
		return
	}
	links, err := h.store.ListMenuItemAddonCategoryLinks(ctx)
	if err != nil {
		writeInternalError(w, h.log, "list menu item addon categories", err)
		return
	}

	writeJSON(w, http.StatusOK, buildMenu(categories, items, addonCats, addons, links))
}

func buildMenu(
	categories []database.Category,
	items []database.MenuItem,
	addonCats []database.AddonCategory,
	addons []database.Addon,
	links []database.MenuItemAddonCategory,
) menuResponse {
	addonsByCat := make(map[int64][]addonResponse)
	for _, a := range addons {
		addonsByCat[a.AddonCategoryID] = append(addonsByCat[a.AddonCategoryID], addonResponse{
			ID:    a.ID,
			Name:  a.Name,
			Price: money.String(a.Price),
		})
	}

	activeCats := make(map[int64]addonCategoryResponse, len(addonCats))
	for _, c := range addonCats {
		list := addonsByCat[c.ID]
		if list == nil {
			list = []addonResponse{}
		}
		activeCats[c.ID] = addonCategoryResponse{
			ID:           c.ID,
			Name:         c.Name,
			MinSelection: c.MinSelection,
			MaxSelection: c.MaxSelection,
			Addons:       list,
		}
	}

	// Links arrive ordered by menu item and sort order.
	catsByItem := make(map[int64][]addonCategoryResponse)
	for _, l := range links {
		c, ok := activeCats[l.AddonCategoryID]
		if !ok {
			continue
		}
		catsByItem[l.MenuItemID] = append(catsByItem[l.MenuItemID], c)
	}

	itemsByCat := make(map[int64][]menuItemResponse)
	for _, it := range items {
		ac := catsByItem[it.ID]
		if ac == nil {
			ac = []addonCategoryResponse{}
		}
		itemsByCat[it.CategoryID] = append(itemsByCat[it.CategoryID], menuItemResponse{
			ID:              it.ID,
			Name:            it.Name,
			Description:     textPtr(it.Description),
			Price:           money.String(it.Price),
			AddonCategories: ac,
		})
	}

	resp := menuResponse{Categories: make([]menuCategoryResponse, 0, len(categories))}
	for _, c := range categories {
		list, ok := itemsByCat[c.ID]
		if !ok {
			continue
		}
		resp.Categories = append(resp.Categories, menuCategoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Items: list,
		})
	}
	return resp
}
