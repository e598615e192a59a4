package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/domain/domaintest"
	"robotpacc/internal/domain/export"
	v1 "robotpacc/internal/infrastructure/http/v1"
	"robotpacc/internal/infrastructure/storage/postgres"
	"robotpacc/pkg/logger"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeDB struct {
	err error
}

func (f fakeDB) Ping(context.Context) error { return f.err }

func (f fakeDB) Stats() postgres.PoolStats { return postgres.PoolStats{MaxConns: 4} }

func newServer(t *testing.T, db fakeDB) (*domaintest.Env, http.Handler) {
	t.Helper()
	env := domaintest.NewEnv(now)
	router := v1.NewRouter(v1.RouterConfig{
		Items:     env.Items,
		Suppliers: env.Suppliers,
		Customers: env.Customers,
		Inward:    env.Inward,
		Outward:   env.Outward,
		Reports:   env.Reports,
		Export:    export.NewService(env.Inward, env.Outward),
		DB:        db,
		Logger:    logger.NewNop(),
	})
	return env, router
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	_, h := newServer(t, fakeDB{})

	rec := do(t, h, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodGet, "/health/info", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "robotpacc", body["app"])

	_, down := newServer(t, fakeDB{err: errors.New("connection refused")})
	rec = do(t, down, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateItemMissingFields(t *testing.T) {
	_, h := newServer(t, fakeDB{})

	rec := do(t, h, http.MethodPost, "/api/v1/items", map[string]any{"itemcode": "P-1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, apperror.CodeValidation, body["code"])
	assert.Equal(t, "Missing required fields", body["error"])

	fields := body["details"].(map[string]any)["fields"].([]any)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.(map[string]any)["field"].(string))
	}
	assert.Contains(t, names, "itemname")
	assert.Contains(t, names, "qty")
}

func TestItemNotFound(t *testing.T) {
	_, h := newServer(t, fakeDB{})

	rec := do(t, h, http.MethodGet, "/api/v1/items/NOPE", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, apperror.CodeNotFound, body["code"])
}

func TestMovementFlow(t *testing.T) {
	env, h := newServer(t, fakeDB{})

	rec := do(t, h, http.MethodPost, "/api/v1/items", map[string]any{
		"itemcode": "P-1",
		"itemname": "Hex bolt",
		"qty":      0,
		"dtpur":    "01-15-2024",
		"expiry":   "12-31-2099",
		"avgcost":  0,
		"minstock": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env.PutSupplier("555-0100", "P-1")

	receipt := map[string]any{
		"itemcode":        "P-1",
		"phone":           "555-0100",
		"uuidin":          "IN-1",
		"buildqty":        10,
		"reciveqty":       10,
		"acceptqty":       10,
		"rejectqty":       0,
		"additionalprice": 5,
	}
	rec = do(t, h, http.MethodPost, "/api/v1/inward", receipt)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "IN-1", body["uuid"])
	assert.Equal(t, float64(10), body["updatedQty"])
	assert.Equal(t, "5", body["avgCost"])

	rec = do(t, h, http.MethodPost, "/api/v1/inward", receipt)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperror.CodeConflict, decode(t, rec)["code"])

	rec = do(t, h, http.MethodPost, "/api/v1/outward", map[string]any{
		"itemcode":  "P-1",
		"uuidout":   "OUT-1",
		"referece":  "INV-7",
		"issueqty":  3,
		"salevalue": 6,
		"unitprice": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body = decode(t, rec)
	assert.Equal(t, "30", body["profit"])
	assert.Equal(t, "200", body["profitpercentage"])
	assert.Equal(t, float64(7), body["updatedQty"])

	rec = do(t, h, http.MethodGet, "/api/v1/outward/OUT-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "INV-7", decode(t, rec)["reference"])

	rec = do(t, h, http.MethodGet, "/api/v1/items/P-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, float64(7), body["qty"])
	assert.Equal(t, "5", body["avgcost"])

	rec = do(t, h, http.MethodGet, "/api/v1/reports/movements/outward", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["totalCount"])
}

func TestOutwardOversell(t *testing.T) {
	env, h := newServer(t, fakeDB{})
	env.PutItem("P-1", 5, "10")

	rec := do(t, h, http.MethodPost, "/api/v1/outward", map[string]any{
		"itemcode":  "P-1",
		"issueqty":  1,
		"salevalue": 6,
		"unitprice": 12,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperror.CodeValidation, decode(t, rec)["code"])

	item, err := env.Items.Get(context.Background(), "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)
}

func TestUnknownMovementKind(t *testing.T) {
	_, h := newServer(t, fakeDB{})

	rec := do(t, h, http.MethodGet, "/api/v1/reports/movements/sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/export/sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportInward(t *testing.T) {
	env, h := newServer(t, fakeDB{})
	env.PutItem("P-1", 0, "0")
	env.PutSupplier("555-0100", "P-1")

	rec := do(t, h, http.MethodPost, "/api/v1/inward", map[string]any{
		"itemcode":        "P-1",
		"phone":           "555-0100",
		"uuidin":          "IN-9",
		"buildqty":        4,
		"reciveqty":       4,
		"acceptqty":       4,
		"rejectqty":       0,
		"additionalprice": "2.5",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/export/inward", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inward-")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inward")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "IN-9", rows[1][0])
}

func TestDashboard(t *testing.T) {
	env, h := newServer(t, fakeDB{})
	env.PutItem("P-1", 0, "0")

	rec := do(t, h, http.MethodGet, "/api/v1/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	overview := body["overview"].(map[string]any)
	assert.Equal(t, float64(1), overview["totalItems"])
	assert.Len(t, body["lowStock"], 1)
}
