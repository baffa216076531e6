package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/infrastructure/cache"
	"github.com/sangkips/billbook-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/billbook-api/internal/infrastructure/repository"
	"github.com/sangkips/billbook-api/internal/presentation/http/handler"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	printer *printer.Buffer
}

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		App:         config.AppConfig{Name: "billbook-api", Timezone: "UTC"},
		Security:    config.SecurityConfig{APIKey: testAPIKey},
		Auth:        config.AuthConfig{Mode: config.AuthModeStore},
		RateLimit:   config.RateLimitConfig{Requests: 1000, Duration: 60},
		Printer:     config.PrinterConfig{Type: "none", Width: 32},
		Shop:        config.ShopConfig{Name: "Corner Store", PhoneRegion: "IN"},
		Maintenance: config.MaintenanceConfig{StalePromotionAfter: 15 * time.Minute, IdempotencyTTL: time.Hour},
	}
	if mutate != nil {
		mutate(cfg)
	}

	db := dbtest.New(t)
	loc := time.UTC
	c := cache.New(context.Background(), &cfg.Redis)
	buf := &printer.Buffer{}
	header := entity.ReceiptHeader{ShopName: cfg.Shop.Name}

	billRepo := repository.NewBillRepository(db)
	pendingRepo := repository.NewPendingBillRepository(db)
	entryRepo := repository.NewManualEntryRepository(db)
	idemRepo := repository.NewIdempotencyRepository(db)

	maintenance := service.NewMaintenanceService(pendingRepo, idemRepo, cfg.Maintenance.StalePromotionAfter)
	handlers := &Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(cfg.Auth, repository.NewUserRepository(db))),
		Product: handler.NewProductHandler(service.NewProductService(repository.NewProductRepository(db), c)),
		Bill: handler.NewBillHandler(
			service.NewBillService(billRepo, loc),
			service.NewDocumentService(billRepo, header, loc),
		),
		PendingBill: handler.NewPendingBillHandler(
			service.NewPendingBillService(pendingRepo, loc, cfg.Shop.PhoneRegion, cfg.Shop.Name),
			service.NewPromotionService(pendingRepo, c),
			maintenance,
		),
		ManualEntry: handler.NewManualEntryHandler(service.NewManualEntryService(entryRepo, loc)),
		Report:      handler.NewReportHandler(service.NewReportService(billRepo, entryRepo, loc)),
		Printer:     handler.NewPrinterHandler(service.NewPrinterService(buf, billRepo, header, cfg.Printer.Width, loc)),
	}

	return &testServer{
		router:  Setup(handlers, &Deps{Cfg: cfg, IdempotencyRepo: idemRepo}),
		printer: buf,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var sampleBill = map[string]interface{}{
	"customerName": "Asha",
	"items": []map[string]interface{}{
		{"name": "Rice", "quantity": 2, "price": 50},
		{"name": "Oil", "quantity": 1, "price": 30},
	},
	"discount":        10,
	"deliveryCharges": 20,
	"outstanding":     15,
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/nothing-here", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["error"])
}

func TestAccessGate(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/products", nil, middleware.APIKeyHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	unset := newTestServer(t, func(cfg *config.Config) { cfg.Security.APIKey = "" })
	w = unset.do(t, http.MethodGet, "/api/pending-bills", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "API key not configured on server", decode(t, w)["error"])

	// the user endpoints are not gated
	req = httptest.NewRequest(http.MethodGet, "/api/users/status", nil)
	w = httptest.NewRecorder()
	unset.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProductRejectsStringPrice(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/products", `{"name":"Rice","price":"50"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])

	w = s.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Rice", "price": 50})
	require.Equal(t, http.StatusCreated, w.Code)
	product := decode(t, w)
	assert.Equal(t, "Rice", product["name"])
	assert.Equal(t, float64(50), product["price"])

	w = s.do(t, http.MethodGet, "/api/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBillComputesTotals(t *testing.T) {
	s := newTestServer(t, nil)

	payload := map[string]interface{}{}
	for k, v := range sampleBill {
		payload[k] = v
	}
	payload["total"] = 9999

	w := s.do(t, http.MethodPost, "/api/bills", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	bill := decode(t, w)
	assert.Equal(t, float64(130), bill["subtotal"])
	assert.Equal(t, float64(140), bill["total"])
	assert.Equal(t, float64(155), bill["grandTotal"])
	assert.NotEmpty(t, bill["billNo"])

	w = s.do(t, http.MethodGet, "/api/bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = s.do(t, http.MethodPost, "/api/bills/"+bill["id"].(string)+"/print", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.printer.Jobs())

	w = s.do(t, http.MethodDelete, "/api/bills/"+bill["id"].(string), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bill deleted successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodDelete, "/api/bills/"+bill["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBillValidation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/bills", map[string]interface{}{"customerName": "  ", "items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/bills", map[string]interface{}{"customerName": "Asha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkPaidFlow(t *testing.T) {
	s := newTestServer(t, nil)

	payload := map[string]interface{}{}
	for k, v := range sampleBill {
		payload[k] = v
	}
	w := s.do(t, http.MethodPost, "/api/pending-bills", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pending := decode(t, w)
	assert.Equal(t, "pending", pending["status"])
	id := pending["id"].(string)

	w = s.do(t, http.MethodPost, "/api/pending-bills/"+id+"/mark-paid", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	promoted := body["promotedBill"].(map[string]interface{})
	assert.Equal(t, float64(155), promoted["grandTotal"])
	assert.Equal(t, "Asha", promoted["customerName"])

	w = s.do(t, http.MethodGet, "/api/pending-bills/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/pending-bills/"+id+"/mark-paid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/bills", nil)
	var bills []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bills))
	assert.Len(t, bills, 1)
}

func TestMarkPaidReplaysWithIdempotencyKey(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/pending-bills", map[string]interface{}{"customerName": "Ravi"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	first := s.do(t, http.MethodPost, "/api/pending-bills/"+id+"/mark-paid", nil, middleware.IdempotencyKeyHeader, "tap-1")
	require.Equal(t, http.StatusOK, first.Code)

	retry := s.do(t, http.MethodPost, "/api/pending-bills/"+id+"/mark-paid", nil, middleware.IdempotencyKeyHeader, "tap-1")
	assert.Equal(t, http.StatusOK, retry.Code)
	assert.Equal(t, "true", retry.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), retry.Body.String())
}

func TestPendingBillListClampsLimit(t *testing.T) {
	s := newTestServer(t, nil)

	for _, name := range []string{"A", "B", "C"} {
		w := s.do(t, http.MethodPost, "/api/pending-bills", map[string]interface{}{"customerName": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	tests := []struct {
		query     string
		wantLimit float64
		wantItems int
	}{
		{"", 50, 3},
		{"?limit=0", 1, 1},
		{"?limit=100000", 500, 3},
		{"?limit=abc", 50, 3},
		{"?skip=2&limit=5", 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/pending-bills"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantLimit, body["limit"])
			assert.Equal(t, float64(3), body["total"])
			assert.Len(t, body["items"], tt.wantItems)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/users/register", map[string]string{"username": "owner", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/users/register", map[string]string{"username": "owner", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/users/login", map[string]string{"username": "owner", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "owner", body["user"].(map[string]interface{})["username"])

	w = s.do(t, http.MethodPost, "/api/users/login", map[string]string{"username": "owner", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/users/login", map[string]string{"username": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSingleModeLoginMisconfigured(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth = config.AuthConfig{Mode: config.AuthModeSingle}
	})

	w := s.do(t, http.MethodPost, "/api/users/login", map[string]string{"username": "owner", "password": "secret1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportSummary(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/manual-entries", map[string]interface{}{"type": "expense", "amount": 40})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/reports/summary?period=monthly", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "monthly", decode(t, w)["period"])

	w = s.do(t, http.MethodGet, "/api/reports/summary?period=weekly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
