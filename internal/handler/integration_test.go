//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiwari-pos/digimenu/internal/auth"
	"github.com/kiwari-pos/digimenu/internal/config"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/kiwari-pos/digimenu/internal/router"
	"github.com/kiwari-pos/digimenu/internal/seed"
	"github.com/kiwari-pos/digimenu/internal/ws"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const integrationSecret = "integration-test-secret"

// TestIntegrationOrderLifecycle exercises the order API against a real
// PostgreSQL database: menu, composition, promotion, transitions and
// cancellation.
func TestIntegrationOrderLifecycle(t *testing.T) {
	ctx := context.Background()

	connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	seedCatalog(t, ctx, pool)

	cfg := &config.Config{}
	cfg.HTTP.Port = "8081"
	cfg.Database.URL = connStr
	cfg.Auth.JWTSecret = integrationSecret

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := ws.NewHub()
	go hub.Run(hubCtx)

	server := httptest.NewServer(router.New(cfg, pool, hub, hub, prometheus.NewRegistry(), logger))
	defer server.Close()

	clientID := uuid.New()
	clientToken := token(t, clientID, enum.RoleClient)
	staffToken := token(t, uuid.New(), enum.RoleStaff)

	// --- 1. Menu lists seeded items and resolves ids by name ---
	items := menuItemIDs(t, server)
	nasiGoreng, ayamBakar := items["Nasi Goreng"], items["Ayam Bakar"]
	if _, ok := items["Soto Ayam"]; ok {
		t.Fatal("unavailable item listed on menu")
	}
	addons := addonIDs(t, server)

	// --- 2. Order: 2 x Nasi Goreng + Telur = 44.00, 10% promo = 4.40 off ---
	status, created := doJSON(t, server, "POST", "/orders", map[string]interface{}{
		"payment_method": "cash",
		"delivery_type":  "pickup",
		"items": []map[string]interface{}{
			{"menu_item_id": nasiGoreng, "quantity": 2, "addon_ids": []int64{addons["Telur"]}},
		},
	}, clientToken)
	if status != http.StatusCreated {
		t.Fatalf("create order: status %d, body %v", status, created)
	}
	if created["subtotal"] != "44.00" || created["discount_amount"] != "4.40" || created["total_amount"] != "39.60" {
		t.Fatalf("pricing: got subtotal=%v discount=%v total=%v", created["subtotal"], created["discount_amount"], created["total_amount"])
	}
	if created["status"] != "pending" || created["version"] != float64(1) {
		t.Fatalf("initial state: got status=%v version=%v", created["status"], created["version"])
	}
	orderID := created["id"].(string)

	// --- 3. Missing required sauce is rejected and nothing is stored ---
	status, rejected := doJSON(t, server, "POST", "/orders", map[string]interface{}{
		"payment_method": "cash",
		"delivery_type":  "pickup",
		"items":          []map[string]interface{}{{"menu_item_id": ayamBakar, "quantity": 1}},
	}, clientToken)
	if status != http.StatusUnprocessableEntity || rejected["kind"] != "addon_selection_invalid" {
		t.Fatalf("missing sauce: status %d, body %v", status, rejected)
	}

	// --- 4. Staff confirms; stale version and skipped step are rejected ---
	path := fmt.Sprintf("/orders/%s/status", orderID)
	status, confirmed := doJSON(t, server, "PATCH", path, map[string]interface{}{"status": "confirmed", "version": 1}, staffToken)
	if status != http.StatusOK || confirmed["version"] != float64(2) {
		t.Fatalf("confirm: status %d, body %v", status, confirmed)
	}
	if status, body := doJSON(t, server, "PATCH", path, map[string]interface{}{"status": "preparing", "version": 1}, staffToken); status != http.StatusConflict {
		t.Fatalf("stale version: status %d, body %v", status, body)
	}
	if status, body := doJSON(t, server, "PATCH", path, map[string]interface{}{"status": "delivered", "version": 2}, staffToken); status != http.StatusConflict {
		t.Fatalf("skipped step: status %d, body %v", status, body)
	}

	// --- 5. Owner reads the order with history ---
	status, detail := doJSON(t, server, "GET", "/orders/"+orderID, nil, clientToken)
	if status != http.StatusOK {
		t.Fatalf("get order: status %d, body %v", status, detail)
	}
	if n := len(detail["history"].([]interface{})); n != 1 {
		t.Fatalf("history: got %d entries, want 1", n)
	}
	if n := len(detail["items"].([]interface{})); n != 1 {
		t.Fatalf("items: got %d, want 1", n)
	}
	otherToken := token(t, uuid.New(), enum.RoleClient)
	if status, _ := doJSON(t, server, "GET", "/orders/"+orderID, nil, otherToken); status != http.StatusNotFound {
		t.Fatalf("other client: status %d, want 404", status)
	}

	// --- 6. Cancel, then terminal orders refuse further updates ---
	status, cancelled := doJSON(t, server, "DELETE", "/orders/"+orderID+"?version=2", nil, staffToken)
	if status != http.StatusOK || cancelled["status"] != "cancelled" {
		t.Fatalf("cancel: status %d, body %v", status, cancelled)
	}
	if status, body := doJSON(t, server, "PATCH", path, map[string]interface{}{"status": "confirmed", "version": 3}, staffToken); status != http.StatusConflict {
		t.Fatalf("update cancelled order: status %d, body %v", status, body)
	}

	// --- 7. Staff list filtered by status ---
	status, list := doJSON(t, server, "GET", "/orders?status=cancelled", nil, staffToken)
	if status != http.StatusOK {
		t.Fatalf("list: status %d, body %v", status, list)
	}
	if n := len(list["orders"].([]interface{})); n != 1 {
		t.Fatalf("cancelled orders: got %d, want 1", n)
	}

	t.Logf("integration flow passed: order=%s client=%s", orderID, clientID)
}

// --- Setup helpers ---

func setupPostgresContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("digimenu_test"),
		tcpostgres.WithUsername("digimenu"),
		tcpostgres.WithPassword("digimenu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}
	return connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	// Connect with stdlib for migrate
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// Go test sets cwd to the package directory.
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}

func seedCatalog(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	now := time.Now()
	f := &seed.Fixture{
		Categories: []seed.Category{{Key: "rice", Name: "Rice"}},
		AddonCategories: []seed.AddonCategory{
			{Key: "extras", Name: "Extras", Min: 0, Max: 3, Addons: []seed.Addon{{Name: "Telur", Price: "2.00"}}},
			{Key: "sauce", Name: "Sauce", Min: 1, Max: 1, Addons: []seed.Addon{{Name: "Sambal", Price: "1.00"}}},
		},
		MenuItems: []seed.MenuItem{
			{Name: "Nasi Goreng", Category: "rice", Price: "20.00", AddonCategories: []string{"extras"}},
			{Name: "Ayam Bakar", Category: "rice", Price: "35.00", AddonCategories: []string{"sauce", "extras"}},
			{Name: "Soto Ayam", Category: "rice", Price: "18.00", Unavailable: true},
		},
		Promotions: []seed.Promotion{
			{Name: "Ten off", Percentage: "10", Start: now.Add(-time.Hour), End: now.Add(24 * time.Hour)},
		},
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate fixture: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)
	if _, err := seed.Apply(ctx, database.New(tx), f); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit seed: %v", err)
	}
}

func token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(integrationSecret, userID, role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func fetchMenu(t *testing.T, server *httptest.Server) []interface{} {
	t.Helper()
	status, menu := doJSON(t, server, "GET", "/menu", nil, "")
	if status != http.StatusOK {
		t.Fatalf("get menu: status %d, body %v", status, menu)
	}
	return menu["categories"].([]interface{})
}

func menuItemIDs(t *testing.T, server *httptest.Server) map[string]int64 {
	t.Helper()
	ids := make(map[string]int64)
	for _, c := range fetchMenu(t, server) {
		for _, it := range c.(map[string]interface{})["items"].([]interface{}) {
			item := it.(map[string]interface{})
			ids[item["name"].(string)] = int64(item["id"].(float64))
		}
	}
	return ids
}

func addonIDs(t *testing.T, server *httptest.Server) map[string]int64 {
	t.Helper()
	ids := make(map[string]int64)
	for _, c := range fetchMenu(t, server) {
		for _, it := range c.(map[string]interface{})["items"].([]interface{}) {
			for _, ac := range it.(map[string]interface{})["addon_categories"].([]interface{}) {
				for _, a := range ac.(map[string]interface{})["addons"].([]interface{}) {
					addon := a.(map[string]interface{})
					ids[addon["name"].(string)] = int64(addon["id"].(float64))
				}
			}
		}
	}
	return ids
}

// --- HTTP helpers ---

func doJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp.StatusCode, result
}
