package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/digimenu/internal/money"
	"github.com/kiwari-pos/digimenu/internal/promotion"
	"github.com/sirupsen/logrus"
)

// PromotionHandler lists promotions that currently apply.
type PromotionHandler struct {
	reader promotion.Reader
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(reader promotion.Reader, logger logrus.FieldLogger) *PromotionHandler {
	return &PromotionHandler{reader: reader, log: logger, now: time.Now}
}

// RegisterRoutes registers GET /active, mounted at /promotions.
func (h *PromotionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/active", h.ListActive)
}

type promotionResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DiscountType string    `json:"discount_type"`
	Value        string    `json:"value"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

// ListActive handles GET /promotions/active.
func (h *PromotionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	promos, err := h.reader.ListActivePromotions(r.Context(), now)
	if err != nil {
		writeInternalError(w, h.log, "list active promotions", err)
		return
	}

	resp := make([]promotionResponse, 0, len(promos))
	for _, p := range promos {
		if !p.ValidAt(now) {
			continue
		}
		resp = append(resp, promotionResponse{
			ID:           p.ID(),
			Name:         p.Name(),
			DiscountType: p.Kind(),
			Value:        p.Value().StringFixed(money.Scale),
			StartDate:    p.StartDate(),
			EndDate:      p.EndDate(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
