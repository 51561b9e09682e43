package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-pricing/adapters/cache"
	"quote-pricing/core/engine"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
)

var december = time.Date(2025, time.December, 3, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, quoter engine.Quoter) *Server {
	t.Helper()
	tables, err := pricing.NewRegistry(pricing.Default())
	require.NoError(t, err)
	return NewServer(Options{
		Version: "test",
		Tables:  tables,
		Quoter:  quoter,
		Metrics: prometheus.NewRegistry(),
		Now:     func() time.Time { return december },
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v), rr.Body.String())
	return v
}

const bundleBody = `{
  "input": {
    "monthlyRevenueRange": "25K-75K",
    "monthlyTransactions": "100-300",
    "industry": "Professional Services",
    "serviceMonthlyBookkeeping": true,
    "serviceTaasMonthly": true
  },
  "calendar_month": 6
}`

func TestQuote(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, http.MethodPost, "/api/v1/quotes", bundleBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	resp := decodeBody[QuoteResponse](t, rr)
	assert.NotEmpty(t, resp.QuoteID)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, types.Totals{MonthlyFee: 625, SetupFee: 825}, resp.Result.Combined)
	assert.Equal(t, int64(275), resp.Display.BookkeepingMonthlyFee)
	assert.Equal(t, int64(350), resp.Display.TaasMonthlyFee)
	assert.Equal(t, int64(275), resp.Display.PackageDiscountMonthly)
	assert.Equal(t, pricing.DefaultVersion, resp.Metadata.TableVersion)
	assert.Equal(t, pricing.Default().Hash().Hex(), resp.Metadata.TableHash)
	assert.NotEmpty(t, resp.Metadata.InputHash)
	assert.False(t, resp.Metadata.Cached)
	assert.Nil(t, resp.Commission)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Quotes.WithLabelValues("ok")))
}

func TestQuoteDefaultsMonthFromClock(t *testing.T) {
	s := newTestServer(t, nil)
	body := strings.Replace(bundleBody, `"calendar_month": 6`, `"commission": true`, 1)

	rr := do(t, s, http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[QuoteResponse](t, rr)
	assert.Equal(t, 12, resp.Result.CalendarMonth)
	assert.Equal(t, int64(1650), resp.Result.Combined.SetupFee)
	require.NotNil(t, resp.Commission)
	assert.True(t, resp.Commission.SetupCommission.Equal(decimal.NewFromInt(330)), resp.Commission.SetupCommission.String())
}

func TestQuoteErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "malformed json",
			body:   `{"input": `,
			status: http.StatusBadRequest,
			code:   "INVALID_JSON",
		},
		{
			name:   "unknown field",
			body:   `{"input": {}, "discount": 10}`,
			status: http.StatusBadRequest,
			code:   "INVALID_JSON",
		},
		{
			name:   "invalid enum",
			body:   `{"input": {"monthlyRevenueRange": "huge", "monthlyTransactions": "<100", "industry": "Other", "serviceMonthlyBookkeeping": true}, "calendar_month": 3}`,
			status: http.StatusUnprocessableEntity,
			code:   "INVALID_INPUT",
		},
		{
			name:   "month out of range",
			body:   strings.Replace(bundleBody, `"calendar_month": 6`, `"calendar_month": 13`, 1),
			status: http.StatusUnprocessableEntity,
			code:   "INVALID_INPUT",
		},
		{
			name:   "unknown industry",
			body:   strings.Replace(bundleBody, "Professional Services", "Alchemy", 1),
			status: http.StatusInternalServerError,
			code:   "CONFIGURATION_ERROR",
		},
		{
			name:   "unknown table version",
			body:   strings.Replace(bundleBody, `"calendar_month": 6`, `"calendar_month": 6, "table_version": "1999.1"`, 1),
			status: http.StatusNotFound,
			code:   "TABLE_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			rr := do(t, s, http.MethodPost, "/api/v1/quotes", tt.body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())

			resp := decodeBody[ErrorResponse](t, rr)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestQuoteInputErrorNamesField(t *testing.T) {
	s := newTestServer(t, nil)
	body := strings.Replace(bundleBody, `"serviceTaasMonthly": true`, `"serviceTaasMonthly": true, "numEntities": -1`, 1)

	rr := do(t, s, http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

	resp := decodeBody[ErrorResponse](t, rr)
	assert.Equal(t, "numEntities", resp.Error.Context["field"])
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Quotes.WithLabelValues("input_error")))
}

func TestQuoteWithCache(t *testing.T) {
	quoter := cache.NewQuoter(engine.New(), cache.NewMemoryStore(time.Minute), "quote:")
	s := newTestServer(t, quoter)

	first := decodeBody[QuoteResponse](t, do(t, s, http.MethodPost, "/api/v1/quotes", bundleBody))
	second := decodeBody[QuoteResponse](t, do(t, s, http.MethodPost, "/api/v1/quotes", bundleBody))

	assert.False(t, first.Metadata.Cached)
	assert.True(t, second.Metadata.Cached)
	assert.Equal(t, first.Result.Combined, second.Result.Combined)
	assert.Equal(t, first.Metadata.InputHash, second.Metadata.InputHash)
	assert.NotEqual(t, first.QuoteID, second.QuoteID)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("miss")))
}

func TestCommission(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, http.MethodPost, "/api/v1/commission", `{"monthly_fee": 625, "setup_fee": 825}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[CommissionResponse](t, rr)
	c := resp.Commission
	assert.Equal(t, pricing.DefaultVersion, resp.TableVersion)
	assert.True(t, c.SetupCommission.Equal(decimal.NewFromInt(165)), c.SetupCommission.String())
	assert.True(t, c.FirstMonthCommission.Equal(decimal.NewFromInt(250)), c.FirstMonthCommission.String())
	assert.True(t, c.MonthlyRecurringCommission.Equal(decimal.RequireFromString("62.5")), c.MonthlyRecurringCommission.String())
	assert.True(t, c.FirstMonthTotal.Equal(decimal.NewFromInt(415)), c.FirstMonthTotal.String())
	assert.True(t, c.TwelveMonthTotal.Equal(decimal.RequireFromString("1102.5")), c.TwelveMonthTotal.String())

	rr = do(t, s, http.MethodPost, "/api/v1/commission", `{"monthly_fee": -1, "setup_fee": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestConstants(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, http.MethodGet, "/api/v1/constants", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[ConstantsResponse](t, rr)
	assert.Equal(t, pricing.DefaultVersion, resp.Version)
	assert.Equal(t, pricing.Default().Hash().Hex(), resp.Hash)
	assert.True(t, resp.Active)
	assert.Equal(t, 2.2, resp.Document.RevenueMultipliers["25K-75K"])

	rr = do(t, s, http.MethodGet, "/api/v1/constants/"+pricing.DefaultVersion, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, s, http.MethodGet, "/api/v1/constants/0.0", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, s, http.MethodGet, "/api/v1/constants/versions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	versions := decodeBody[VersionsResponse](t, rr)
	assert.Equal(t, pricing.DefaultVersion, versions.Active)
	assert.Equal(t, []string{pricing.DefaultVersion}, versions.Versions)
}

func TestSelectRegisteredTable(t *testing.T) {
	s := newTestServer(t, nil)

	doc := pricing.DefaultDocument()
	doc.Version = "2026.1"
	doc.Bookkeeping.BaseMonthlyFee = 200
	next, err := pricing.FromDocument(doc)
	require.NoError(t, err)
	require.NoError(t, s.tables.Register(next))

	body := strings.Replace(bundleBody, `"calendar_month": 6`, `"calendar_month": 6, "table_version": "2026.1"`, 1)
	rr := do(t, s, http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[QuoteResponse](t, rr)
	assert.Equal(t, "2026.1", resp.Metadata.TableVersion)
	// (200 + 100) * 2.2 = 660, halved to 330 and rounded up to 350
	assert.Equal(t, int64(350), resp.Display.BookkeepingMonthlyFee)
	assert.Equal(t, int64(990), resp.Display.BookkeepingSetupFee)
}

func TestHealthVersionMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	health := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, pricing.DefaultVersion, health["table_version"])

	rr = do(t, s, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test", decodeBody[map[string]string](t, rr)["version"])

	rr = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "quote_http_requests_total")
	assert.Contains(t, rr.Body.String(), `route="/health"`)
}
