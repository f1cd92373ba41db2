package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kiwari-pos/digimenu/internal/order"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// errorResponse is the body of every non-2xx response. Kind and the fields
// after it are only set for order errors.
type errorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	Field    string `json:"field,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeInternalError(w http.ResponseWriter, log logrus.FieldLogger, op string, err error) {
	log.WithError(err).Error(op)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// writeOrderError maps an order error to its HTTP status. Errors that are
// not *order.Error are treated as storage failures.
func writeOrderError(w http.ResponseWriter, log logrus.FieldLogger, op string, err error) {
	var oe *order.Error
	if !errors.As(err, &oe) || oe.Kind == order.KindStorage {
		writeInternalError(w, log, op, err)
		return
	}

	resp := errorResponse{
		Error:    oe.Error(),
		Kind:     string(oe.Kind),
		Field:    oe.Field,
		EntityID: oe.EntityID,
	}
	if oe.Kind == order.KindAddonSelectionInvalid {
		lo, hi := oe.Min, oe.Max
		resp.Min, resp.Max = &lo, &hi
	}
	writeJSON(w, orderErrorStatus(oe), resp)
}

func orderErrorStatus(e *order.Error) int {
	switch e.Kind {
	case order.KindInvalidRequest, order.KindEmptyOrder, order.KindUnknownStatus:
		return http.StatusBadRequest
	case order.KindNotFound:
		// "id" is the order itself; anything else is a catalog reference
		// inside the request body.
		if e.Field == "id" {
			return http.StatusNotFound
		}
		return http.StatusUnprocessableEntity
	case order.KindUnavailable, order.KindAddonSelectionInvalid, order.KindAddonNotApplicable:
		return http.StatusUnprocessableEntity
	case order.KindInvalidStatusTransition, order.KindConcurrentModification:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// pagination reads limit and offset query params, clamping limit to
// maxPageLimit. Malformed values fall back to the defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
