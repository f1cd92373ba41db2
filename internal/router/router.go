package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiwari-pos/digimenu/internal/config"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/events"
	"github.com/kiwari-pos/digimenu/internal/handler"
	"github.com/kiwari-pos/digimenu/internal/metrics"
	mw "github.com/kiwari-pos/digimenu/internal/middleware"
	"github.com/kiwari-pos/digimenu/internal/promotion"
	"github.com/kiwari-pos/digimenu/internal/service"
	"github.com/kiwari-pos/digimenu/internal/ws"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

// New creates a Chi router with all application routes wired up.
// publisher receives order events after commit; pass the hub itself when
// no other sink is configured. Collectors are registered on reg and served
// at /metrics.
func New(cfg *config.Config, pool *pgxpool.Pool, hub *ws.Hub, publisher events.Publisher, reg *prometheus.Registry, logger logrus.FieldLogger) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	queries := database.New(pool)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		w.Header().Set("Content-Type", "application/json")
		if err := pool.Ping(ctx); err != nil {
			logger.WithError(err).Warn("health check: database ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	menuHandler := handler.NewMenuHandler(queries, logger)
	r.Route("/menu", menuHandler.RegisterRoutes)

	promotionHandler := handler.NewPromotionHandler(promotion.NewStore(queries), logger)
	r.Route("/promotions", promotionHandler.RegisterRoutes)

	// WebSocket route (handles auth internally via query param)
	owner := func(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error) {
		o, err := queries.GetOrder(ctx, orderID)
		if err != nil {
			return uuid.Nil, err
		}
		return o.ClientID, nil
	}
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.Auth.JWTSecret, owner, logger, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.Auth.JWTSecret))

		newOrderStore := func(db database.DBTX) service.OrderStore {
			return database.New(db)
		}
		orderService := service.NewOrderService(pool, newOrderStore, publisher, metrics.New(reg), logger)
		orderHandler := handler.NewOrderHandler(orderService, queries, logger)
		r.Route("/orders", orderHandler.RegisterRoutes)
	})

	logger.Info("router initialized")
	return r
}
