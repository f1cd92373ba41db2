package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kiwari-pos/digimenu/internal/catalog"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/kiwari-pos/digimenu/internal/events"
	"github.com/kiwari-pos/digimenu/internal/metrics"
	"github.com/kiwari-pos/digimenu/internal/money"
	"github.com/kiwari-pos/digimenu/internal/order"
	"github.com/kiwari-pos/digimenu/internal/promotion"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to create orders and move them
// through their lifecycle. Satisfied by *database.Queries (and its WithTx
// variant).
type OrderStore interface {
	catalog.Queries
	promotion.Queries
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateOrderItemAddon(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	CreateOrderStatusHistory(ctx context.Context, arg database.CreateOrderStatusHistoryParams) (database.OrderStatusHistory, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// ComposeOrderRequest is the input for placing an order.
type ComposeOrderRequest struct {
	ClientID      uuid.UUID
	AddressID     uuid.NullUUID
	PaymentMethod string
	DeliveryType  string
	Notes         string
	Items         []order.LineRequest
}

// TransitionRequest moves an order to Status. ExpectedVersion is the
// version the caller last saw.
type TransitionRequest struct {
	OrderID         uuid.UUID
	Status          string
	ExpectedVersion int32
	ChangedBy       uuid.UUID
}

// OrderResult is the full created order with items.
type OrderResult struct {
	Order     database.Order
	Items     []OrderItemResult
	Promotion *promotion.Promotion
}

// OrderItemResult is an item with its addons.
type OrderItemResult struct {
	Item   database.OrderItem
	Addons []database.OrderItemAddon
}

// OrderService handles order business logic.
type OrderService struct {
	pool      TxBeginner
	newStore  NewOrderStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher and m may be nil.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, publisher events.Publisher, m *metrics.Metrics, logger logrus.FieldLogger) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{
		pool:      pool,
		newStore:  newStore,
		publisher: publisher,
		metrics:   m,
		log:       logger,
		now:       time.Now,
	}
}

// ComposeOrder validates the lines against the catalog, prices them with the
// best promotion active now, and stores the order with all its items in one
// transaction.
func (s *OrderService) ComposeOrder(ctx context.Context, req ComposeOrderRequest) (*OrderResult, error) {
	if err := validateComposeRequest(req); err != nil {
		s.reject(err)
		return nil, err
	}

	result, err := s.composeOrderTx(ctx, req)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	o := result.Order
	total := money.FromNumeric(o.TotalAmount)
	s.metrics.OrderCreated(o.DeliveryType, total.InexactFloat64())
	s.log.WithFields(logrus.Fields{
		"order_id":  o.ID,
		"client_id": o.ClientID,
		"items":     len(result.Items),
		"total":     total.StringFixed(money.Scale),
	}).Info("order created")

	s.publish(ctx, newEvent(enum.EventOrderCreated, o, "", o.CreatedAt))
	return result, nil
}

func (s *OrderService) composeOrderTx(ctx context.Context, req ComposeOrderRequest) (*OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, order.StorageError("begin tx", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	now := s.now()

	// --- Validate + price lines ---
	lines, err := order.NewComposer(catalog.NewStore(store)).Compose(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	promos, err := promotion.NewStore(store).ListActivePromotions(ctx, now)
	if err != nil {
		return nil, order.StorageError("list promotions", err)
	}
	quote := order.Price(lines, now, promos)

	// --- Insert order ---
	params := database.CreateOrderParams{
		ClientID:       req.ClientID,
		PaymentMethod:  req.PaymentMethod,
		DeliveryType:   req.DeliveryType,
		Notes:          text(req.Notes),
		Subtotal:       money.ToNumeric(quote.Subtotal),
		DiscountAmount: money.ToNumeric(quote.Discount),
		TotalAmount:    money.ToNumeric(quote.Total),
	}
	if req.AddressID.Valid {
		params.AddressID = pgtype.UUID{Bytes: req.AddressID.UUID, Valid: true}
	}
	if quote.Promotion != nil {
		params.PromotionID = pgtype.Int8{Int64: quote.Promotion.ID(), Valid: true}
	}

	created, err := store.CreateOrder(ctx, params)
	if err != nil {
		return nil, order.StorageError("create order", err)
	}

	// --- Insert items ---
	items := make([]OrderItemResult, 0, len(lines))
	for _, l := range lines {
		item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:      created.ID,
			MenuItemID:   l.MenuItem.ID,
			MenuItemName: l.MenuItem.Name,
			Position:     int32(l.Position),
			Quantity:     int32(l.Quantity),
			UnitPrice:    money.ToNumeric(l.UnitPrice),
			LineTotal:    money.ToNumeric(l.LineTotal),
			Notes:        text(l.Notes),
		})
		if err != nil {
			return nil, order.StorageError("create order item", err)
		}

		addons := make([]database.OrderItemAddon, 0, len(l.Addons))
		for _, a := range l.Addons {
			oia, err := store.CreateOrderItemAddon(ctx, database.CreateOrderItemAddonParams{
				OrderItemID:     item.ID,
				AddonID:         a.ID,
				AddonCategoryID: a.AddonCategoryID,
				AddonName:       a.Name,
				UnitPrice:       money.ToNumeric(a.Price),
			})
			if err != nil {
				return nil, order.StorageError("create order item addon", err)
			}
			addons = append(addons, oia)
		}

		items = append(items, OrderItemResult{Item: item, Addons: addons})
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return nil, order.StorageError("commit tx", err)
	}

	return &OrderResult{
		Order:     created,
		Items:     items,
		Promotion: quote.Promotion,
	}, nil
}

// TransitionOrderStatus moves an order one step along its lifecycle. The
// update only lands if the order is still at ExpectedVersion; otherwise it
// fails with KindConcurrentModification and nothing is written.
func (s *OrderService) TransitionOrderStatus(ctx context.Context, req TransitionRequest) (database.Order, error) {
	if _, err := order.ParseStatus(req.Status); err != nil {
		s.reject(err)
		return database.Order{}, err
	}

	updated, from, err := s.transitionTx(ctx, req)
	if err != nil {
		s.reject(err)
		return database.Order{}, err
	}

	s.metrics.StatusChanged(from, updated.Status)
	s.log.WithFields(logrus.Fields{
		"order_id": updated.ID,
		"from":     from,
		"status":   updated.Status,
		"version":  updated.Version,
	}).Info("order status changed")

	s.publish(ctx, newEvent(enum.EventOrderStatusChanged, updated, from, updated.UpdatedAt))
	return updated, nil
}

// CancelOrder is TransitionOrderStatus to cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, expectedVersion int32, changedBy uuid.UUID) (database.Order, error) {
	return s.TransitionOrderStatus(ctx, TransitionRequest{
		OrderID:         orderID,
		Status:          enum.OrderStatusCancelled,
		ExpectedVersion: expectedVersion,
		ChangedBy:       changedBy,
	})
}

func (s *OrderService) transitionTx(ctx context.Context, req TransitionRequest) (database.Order, string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, "", order.StorageError("begin tx", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := store.GetOrder(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, "", &order.Error{
				Kind:     order.KindNotFound,
				Field:    "id",
				EntityID: req.OrderID.String(),
				Msg:      fmt.Sprintf("order %s not found", req.OrderID),
			}
		}
		return database.Order{}, "", order.StorageError("get order", err)
	}

	if current.Version != req.ExpectedVersion {
		return database.Order{}, "", &order.Error{
			Kind:     order.KindConcurrentModification,
			Field:    "version",
			EntityID: current.ID.String(),
			Msg:      fmt.Sprintf("order is at version %d, expected %d", current.Version, req.ExpectedVersion),
		}
	}

	next, err := order.Transition(current.Status, req.Status)
	if err != nil {
		return database.Order{}, "", err
	}

	// The WHERE clause re-checks status and version, so a writer that got
	// in between our read and this update makes it match zero rows.
	updated, err := store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		Status:          string(next),
		ID:              current.ID,
		ExpectedStatus:  current.Status,
		ExpectedVersion: current.Version,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, "", &order.Error{
				Kind:     order.KindConcurrentModification,
				Field:    "version",
				EntityID: current.ID.String(),
				Msg:      "order status changed, please retry",
			}
		}
		return database.Order{}, "", order.StorageError("update order status", err)
	}

	changedBy := pgtype.UUID{}
	if req.ChangedBy != uuid.Nil {
		changedBy = pgtype.UUID{Bytes: req.ChangedBy, Valid: true}
	}
	if _, err := store.CreateOrderStatusHistory(ctx, database.CreateOrderStatusHistoryParams{
		OrderID:    updated.ID,
		FromStatus: current.Status,
		ToStatus:   updated.Status,
		Version:    updated.Version,
		ChangedBy:  changedBy,
	}); err != nil {
		return database.Order{}, "", order.StorageError("create status history", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, "", order.StorageError("commit tx", err)
	}
	return updated, current.Status, nil
}

// --- Helpers ---

func validateComposeRequest(req ComposeOrderRequest) error {
	if req.ClientID == uuid.Nil {
		return &order.Error{Kind: order.KindInvalidRequest, Field: "client_id", Msg: "client_id is required"}
	}

	switch req.PaymentMethod {
	case enum.PaymentMethodCash, enum.PaymentMethodCard, enum.PaymentMethodQRIS:
	default:
		return &order.Error{Kind: order.KindInvalidRequest, Field: "payment_method", Msg: fmt.Sprintf("invalid payment_method %q", req.PaymentMethod)}
	}

	switch req.DeliveryType {
	case enum.DeliveryTypeDelivery:
		if !req.AddressID.Valid {
			return &order.Error{Kind: order.KindInvalidRequest, Field: "address_id", Msg: "address_id is required for delivery orders"}
		}
	case enum.DeliveryTypePickup:
	default:
		return &order.Error{Kind: order.KindInvalidRequest, Field: "delivery_type", Msg: fmt.Sprintf("invalid delivery_type %q", req.DeliveryType)}
	}
	return nil
}

func (s *OrderService) reject(err error) {
	if order.IsValidation(err) {
		s.metrics.OrderRejected(string(order.KindOf(err)))
		return
	}
	s.log.WithError(err).Error("order storage failure")
}

// publish delivers e after commit. Failures are logged and counted but
// never reach the caller: the order change is already durable.
func (s *OrderService) publish(ctx context.Context, e events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, e); err != nil {
		s.metrics.PublishFailed()
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": e.OrderID,
			"event":    e.Type,
		}).Warn("publish order event")
	}
}

func newEvent(typ string, o database.Order, previous string, at time.Time) events.Event {
	return events.Event{
		Type:           typ,
		OrderID:        o.ID,
		ClientID:       o.ClientID,
		Status:         o.Status,
		PreviousStatus: previous,
		Version:        o.Version,
		TotalAmount:    money.String(o.TotalAmount),
		OccurredAt:     at,
	}
}

func text(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
