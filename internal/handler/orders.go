package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/kiwari-pos/digimenu/internal/middleware"
	"github.com/kiwari-pos/digimenu/internal/money"
	"github.com/kiwari-pos/digimenu/internal/order"
	"github.com/kiwari-pos/digimenu/internal/service"
	"github.com/sirupsen/logrus"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	ComposeOrder(ctx context.Context, req service.ComposeOrderRequest) (*service.OrderResult, error)
	TransitionOrderStatus(ctx context.Context, req service.TransitionRequest) (database.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, expectedVersion int32, changedBy uuid.UUID) (database.Order, error)
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListOrderItemAddonsByOrderItem(ctx context.Context, orderItemID uuid.UUID) ([]database.OrderItemAddon, error)
	ListOrderStatusHistory(ctx context.Context, orderID uuid.UUID) ([]database.OrderStatusHistory, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	log   logrus.FieldLogger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, logger logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, log: logger}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders behind middleware.Authenticate.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(enum.RoleClient)).Post("/", h.Create)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.RoleStaff, enum.RoleManager))
		r.Get("/", h.List)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Cancel)
	})
}

// --- Request / Response types ---

type createOrderRequest struct {
	AddressID     string                   `json:"address_id"`
	PaymentMethod string                   `json:"payment_method"`
	DeliveryType  string                   `json:"delivery_type"`
	Notes         string                   `json:"notes"`
	Items         []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	MenuItemID int64   `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes"`
	AddonIDs   []int64 `json:"addon_ids"`
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Version *int32 `json:"version"`
}

type orderResponse struct {
	ID             uuid.UUID               `json:"id"`
	ClientID       uuid.UUID               `json:"client_id"`
	AddressID      *uuid.UUID              `json:"address_id"`
	Status         string                  `json:"status"`
	PaymentMethod  string                  `json:"payment_method"`
	DeliveryType   string                  `json:"delivery_type"`
	Notes          *string                 `json:"notes"`
	Subtotal       string                  `json:"subtotal"`
	DiscountAmount string                  `json:"discount_amount"`
	PromotionID    *int64                  `json:"promotion_id"`
	TotalAmount    string                  `json:"total_amount"`
	Version        int32                   `json:"version"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	Items          []orderItemResponse     `json:"items,omitempty"`
	History        []statusHistoryResponse `json:"history,omitempty"`
}

type orderItemResponse struct {
	ID           uuid.UUID                `json:"id"`
	MenuItemID   int64                    `json:"menu_item_id"`
	MenuItemName string                   `json:"menu_item_name"`
	Position     int32                    `json:"position"`
	Quantity     int32                    `json:"quantity"`
	UnitPrice    string                   `json:"unit_price"`
	LineTotal    string                   `json:"line_total"`
	Notes        *string                  `json:"notes"`
	Addons       []orderItemAddonResponse `json:"addons"`
}

type orderItemAddonResponse struct {
	ID              uuid.UUID `json:"id"`
	AddonID         int64     `json:"addon_id"`
	AddonCategoryID int64     `json:"addon_category_id"`
	Name            string    `json:"name"`
	UnitPrice       string    `json:"unit_price"`
}

type statusHistoryResponse struct {
	FromStatus string     `json:"from_status"`
	ToStatus   string     `json:"to_status"`
	Version    int32      `json:"version"`
	ChangedBy  *uuid.UUID `json:"changed_by"`
	ChangedAt  time.Time  `json:"changed_at"`
}

// orderListResponse wraps a list of orders with pagination metadata.
type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// --- Handlers ---

// Create handles POST /orders. The client id always comes from the token.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var addressID uuid.NullUUID
	if req.AddressID != "" {
		id, err := uuid.Parse(req.AddressID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "address_id: invalid UUID",
				Kind:  string(order.KindInvalidRequest),
				Field: "address_id",
			})
			return
		}
		addressID = uuid.NullUUID{UUID: id, Valid: true}
	}

	lines := make([]order.LineRequest, len(req.Items))
	for i, it := range req.Items {
		lines[i] = order.LineRequest{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
			AddonIDs:   it.AddonIDs,
		}
	}

	result, err := h.svc.ComposeOrder(r.Context(), service.ComposeOrderRequest{
		ClientID:      claims.UserID,
		AddressID:     addressID,
		PaymentMethod: req.PaymentMethod,
		DeliveryType:  req.DeliveryType,
		Notes:         req.Notes,
		Items:         lines,
	})
	if err != nil {
		writeOrderError(w, h.log, "create order", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(result))
}

// List handles GET /orders. Staff only.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	params := database.ListOrdersParams{
		RowLimit:  int32(limit),
		RowOffset: int32(offset),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st, err := order.ParseStatus(s)
		if err != nil {
			writeOrderError(w, h.log, "list orders", err)
			return
		}
		params.Status = pgtype.Text{String: string(st), Valid: true}
	}
	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid client_id")
			return
		}
		params.ClientID = pgtype.UUID{Bytes: id, Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		writeInternalError(w, h.log, "list orders", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dbOrderToResponse(o)
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /orders/{id}. Clients only see their own orders; an order
// owned by someone else is reported as not found.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	o, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternalError(w, h.log, "get order", err)
		return
	}
	if !claims.IsStaff() && o.ClientID != claims.UserID {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), orderID)
	if err != nil {
		writeInternalError(w, h.log, "list order items", err)
		return
	}

	itemResponses := make([]orderItemResponse, len(items))
	for i, item := range items {
		addons, err := h.store.ListOrderItemAddonsByOrderItem(r.Context(), item.ID)
		if err != nil {
			writeInternalError(w, h.log, "list order item addons", err)
			return
		}
		itemResponses[i] = dbOrderItemToResponse(item, addons)
	}

	history, err := h.store.ListOrderStatusHistory(r.Context(), orderID)
	if err != nil {
		writeInternalError(w, h.log, "list order status history", err)
		return
	}

	resp := dbOrderToResponse(o)
	resp.Items = itemResponses
	resp.History = make([]statusHistoryResponse, len(history))
	for i, hst := range history {
		resp.History[i] = dbHistoryToResponse(hst)
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	if req.Version == nil {
		writeError(w, http.StatusBadRequest, "version is required")
		return
	}

	o, err := h.svc.TransitionOrderStatus(r.Context(), service.TransitionRequest{
		OrderID:         orderID,
		Status:          req.Status,
		ExpectedVersion: *req.Version,
		ChangedBy:       claims.UserID,
	})
	if err != nil {
		writeOrderError(w, h.log, "update order status", err)
		return
	}

	writeJSON(w, http.StatusOK, dbOrderToResponse(o))
}

// Cancel handles DELETE /orders/{id}?version=N.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	s := r.URL.Query().Get("version")
	if s == "" {
		writeError(w, http.StatusBadRequest, "version is required")
		return
	}
	version, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid version")
		return
	}

	o, err := h.svc.CancelOrder(r.Context(), orderID, int32(version), claims.UserID)
	if err != nil {
		writeOrderError(w, h.log, "cancel order", err)
		return
	}

	writeJSON(w, http.StatusOK, dbOrderToResponse(o))
}

// --- Response converters ---

func toOrderResponse(result *service.OrderResult) orderResponse {
	resp := dbOrderToResponse(result.Order)
	resp.Items = make([]orderItemResponse, len(result.Items))
	for i, ir := range result.Items {
		resp.Items[i] = dbOrderItemToResponse(ir.Item, ir.Addons)
	}
	return resp
}

func dbOrderToResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:             o.ID,
		ClientID:       o.ClientID,
		AddressID:      uuidPtr(o.AddressID),
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
		DeliveryType:   o.DeliveryType,
		Notes:          textPtr(o.Notes),
		Subtotal:       money.String(o.Subtotal),
		DiscountAmount: money.String(o.DiscountAmount),
		TotalAmount:    money.String(o.TotalAmount),
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.PromotionID.Valid {
		id := o.PromotionID.Int64
		resp.PromotionID = &id
	}
	return resp
}

func dbOrderItemToResponse(item database.OrderItem, addons []database.OrderItemAddon) orderItemResponse {
	resp := orderItemResponse{
		ID:           item.ID,
		MenuItemID:   item.MenuItemID,
		MenuItemName: item.MenuItemName,
		Position:     item.Position,
		Quantity:     item.Quantity,
		UnitPrice:    money.String(item.UnitPrice),
		LineTotal:    money.String(item.LineTotal),
		Notes:        textPtr(item.Notes),
		Addons:       make([]orderItemAddonResponse, len(addons)),
	}
	for i, a := range addons {
		resp.Addons[i] = orderItemAddonResponse{
			ID:              a.ID,
			AddonID:         a.AddonID,
			AddonCategoryID: a.AddonCategoryID,
			Name:            a.AddonName,
			UnitPrice:       money.String(a.UnitPrice),
		}
	}
	return resp
}

func dbHistoryToResponse(h database.OrderStatusHistory) statusHistoryResponse {
	return statusHistoryResponse{
		FromStatus: h.FromStatus,
		ToStatus:   h.ToStatus,
		Version:    h.Version,
		ChangedBy:  uuidPtr(h.ChangedBy),
		ChangedAt:  h.ChangedAt,
	}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func uuidPtr(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}
