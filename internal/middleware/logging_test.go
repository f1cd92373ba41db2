package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kiwari-pos/digimenu/internal/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	handler := chimw.RequestID(middleware.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/orders/x", nil))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("level: got %v, want %v", entry.Level, logrus.WarnLevel)
	}
	if entry.Data["status"] != http.StatusNotFound {
		t.Errorf("status field: got %v", entry.Data["status"])
	}
	if entry.Data["path"] != "/orders/x" {
		t.Errorf("path field: got %v", entry.Data["path"])
	}
	if entry.Data["request_id"] == "" {
		t.Error("expected request id")
	}
}

func TestRequestLoggerDefaultsToOK(t *testing.T) {
	logger, hook := test.NewNullLogger()

	handler := middleware.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	entry := hook.LastEntry()
	if entry == nil || entry.Data["status"] != http.StatusOK {
		t.Fatalf("expected status 200 entry, got %+v", entry)
	}
	if entry.Level != logrus.InfoLevel {
		t.Errorf("level: got %v", entry.Level)
	}
}
