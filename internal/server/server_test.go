package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:               "0",
		CORSOrigins:        []string{"http://localhost:3000"},
		Env:                "test",
		QuoteCacheTTL:      time.Minute,
		RateLimitPerMinute: 600,
		RateLimitBurst:     100,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(testConfig(), store.NewMemoryQuoteCache(time.Minute), zerolog.Nop())
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createReferenceLoan(t *testing.T, h http.Handler) LoanResponse {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/loans", LoanTermsRequest{
		Principal:         "100万",
		AnnualRatePercent: "4.9",
		TermYears:         30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[LoanResponse](t, rec)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCreateLoan(t *testing.T) {
	s := newTestServer(t)
	loan := createReferenceLoan(t, s.Handler())

	assert.NotEmpty(t, loan.ID)
	assert.Equal(t, "1000000.00", loan.Terms.Principal)
	assert.Equal(t, "4.9000", loan.Terms.AnnualRatePercent)
	assert.Equal(t, 360, loan.Terms.Months)
	require.Len(t, loan.Summaries, 2)
	assert.Equal(t, "equal-installment", loan.Summaries[0].Convention)
	assert.Equal(t, "5307.27", loan.Summaries[0].MonthlyPayment)
	assert.Equal(t, "equal-principal", loan.Summaries[1].Convention)
	assert.Equal(t, "6861.11", loan.Summaries[1].FirstMonthPayment)
	assert.Empty(t, loan.Prepayments)
	assert.Equal(t, 1, s.Registry().Len())
}

func TestCreateLoan_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"bad principal", LoanTermsRequest{Principal: "lots", AnnualRatePercent: "4.9", TermYears: 30}, "principal"},
		{"bad rate", LoanTermsRequest{Principal: "500000", AnnualRatePercent: "x", TermYears: 30}, "annualRatePercent"},
		{"no term", LoanTermsRequest{Principal: "500000", AnnualRatePercent: "4.9"}, "terms"},
		{"negative principal", LoanTermsRequest{Principal: "-1", AnnualRatePercent: "4.9", TermYears: 30}, "terms"},
		{"term too long", LoanTermsRequest{Principal: "500000", AnnualRatePercent: "4.9", TermMonths: config.MaxTermMonths + 1}, "terms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/loans", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			problem := decode[ProblemDetails](t, rec)
			assert.Equal(t, ErrorTypeValidation, problem.Type)
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Equal(t, 0, s.Registry().Len())
		})
	}
}

func TestCreateLoan_MalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLoan_NotFound(t *testing.T) {
	s := newTestServer(t)
	for _, id := range []string{"not-a-uuid", "6f1c2b1e-1d7a-4c55-9a8e-2b6f0f6f2a10"} {
		rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, ErrorTypeNotFound, decode[ProblemDetails](t, rec).Type)
	}
}

func TestGetSchedule(t *testing.T) {
	s := newTestServer(t)
	loan := createReferenceLoan(t, s.Handler())

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+loan.ID+"/schedule", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	schedule := decode[ScheduleResponse](t, rec)
	assert.Equal(t, "equal-installment", schedule.Convention)
	require.Len(t, schedule.Entries, 360)
	assert.Equal(t, 1, schedule.Entries[0].Month)
	assert.Equal(t, "4083.33", schedule.Entries[0].Interest)
	assert.Equal(t, "0.00", schedule.Entries[359].RemainingPrincipal)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+loan.ID+"/schedule?convention=equal_principal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "equal-principal", decode[ScheduleResponse](t, rec).Convention)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+loan.ID+"/schedule?convention=balloon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetComparison(t *testing.T) {
	s := newTestServer(t)
	loan := createReferenceLoan(t, s.Handler())

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+loan.ID+"/comparison", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cmp := decode[ComparisonResponse](t, rec)
	assert.Equal(t, "equal-principal", cmp.Cheaper)
	assert.Equal(t, 360, cmp.EqualInstallment.Months)
	assert.NotEqual(t, "0.00", cmp.InterestDifference)
}

func TestPreview_BothStrategies(t *testing.T) {
	s := newTestServer(t)
	loan := createReferenceLoan(t, s.Handler())

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/loans/"+loan.ID+"/preview", PreviewRequest{
		Month:  60,
		Amount: "20万",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	preview := decode[PreviewResponse](t, rec)

	require.NotNil(t, preview.ReduceTerm)
	assert.Equal(t, 257, preview.ReduceTerm.NewTotalMonths)
	assert.Equal(t, 103, preview.ReduceTerm.MonthsReduced)
	assert.Empty(t, preview.ReduceTerm.Schedule)

	require.NotNil(t, preview.ReducePayment)
	assert.Equal(t, "4149.71", preview.ReducePayment.NewPayment)
	assert.Equal(t, 360, preview.ReducePayment.NewTotalMonths)

	// previews commit nothing
	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+loan.ID+"/prepayments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]PrepaymentResponse](t, rec))
}

func TestPreview_SingleStrategy(t *testing.T) {
	s := newTestServer(t)
	loan := createReferenceLoan(t, s.Handler())

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/loans/"+loan.ID+"/preview", PreviewRequest{
		Month:           60,
		Amount:          "200000",
		Strategy:        "reduce_term",
		Convention:      "equal-principal",
		IncludeSchedule: true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	preview := decode[PreviewResponse](t, rec)
	assert.Nil(t, preview.ReducePayment)
	require.NotNil(t, preview.ReduceTerm)
	assert.Equal(t, 288, preview.ReduceTerm.NewTotalMonths)
	assert.Len(t, preview.ReduceTerm.Schedule, 288)
}

func TestAddPrepayment(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	loan := createReferenceLoan(t, h)
	path := "/api/v1/loans/" + loan.ID + "/prepayments"

	rec := doJSON(t, h, http.MethodPost, path, PrepaymentRequest{
		Month:      60,
		Amount:     "200000",
		Strategy:   "reduce-term",
		Convention: "equal-installment",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	updated := decode[LoanResponse](t, rec)
	require.Len(t, updated.Prepayments, 1)
	assert.Equal(t, "200000.00", updated.Prepayments[0].Amount)
	assert.Equal(t, 257, updated.Summaries[0].Months)
	assert.NotEmpty(t, updated.Summaries[0].InterestSaved)
	assert.Equal(t, 360, updated.Summaries[1].Months, "other convention untouched")
	assert.Empty(t, updated.Summaries[1].InterestSaved)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/loans/"+loan.ID+"/schedule", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	schedule := decode[ScheduleResponse](t, rec)
	require.Len(t, schedule.Entries, 257)
	assert.Equal(t, "200000.00", schedule.Entries[59].Prepayment)

	rec = doJSON(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/loans/"+loan.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decode[LoanResponse](t, rec)
	assert.Empty(t, restored.Prepayments)
	assert.Equal(t, 360, restored.Summaries[0].Months)
}

func TestAddPrepayment_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		req    PrepaymentRequest
		status int
		field  string
	}{
		{"month beyond schedule", PrepaymentRequest{Month: 361, Amount: "1000", Strategy: "reduce-term"}, http.StatusUnprocessableEntity, "month"},
		{"month zero", PrepaymentRequest{Month: 0, Amount: "1000", Strategy: "reduce-term"}, http.StatusUnprocessableEntity, "month"},
		{"amount above balance", PrepaymentRequest{Month: 12, Amount: "2000000", Strategy: "reduce-term"}, http.StatusUnprocessableEntity, "amount"},
		{"zero amount", PrepaymentRequest{Month: 12, Amount: "0", Strategy: "reduce-term"}, http.StatusUnprocessableEntity, "amount"},
		{"bad amount", PrepaymentRequest{Month: 12, Amount: "abc", Strategy: "reduce-term"}, http.StatusBadRequest, "amount"},
		{"bad strategy", PrepaymentRequest{Month: 12, Amount: "1000", Strategy: "skip"}, http.StatusBadRequest, "strategy"},
		{"bad convention", PrepaymentRequest{Month: 12, Amount: "1000", Strategy: "reduce-term", Convention: "balloon"}, http.StatusBadRequest, "convention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			loan := createReferenceLoan(t, s.Handler())

			rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/loans/"+loan.ID+"/prepayments", tt.req)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			problem := decode[ProblemDetails](t, rec)
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, tt.field, problem.Errors[0].Field)

			rec = doJSON(t, s.Handler(), http.MethodGet, "/api/v1/loans/"+loan.ID+"/prepayments", nil)
			assert.Empty(t, decode[[]PrepaymentResponse](t, rec))
		})
	}
}

func TestCreateCombined(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/combined", CombinedRequest{
		ProvidentFund: LoanTermsRequest{Principal: "30万", AnnualRatePercent: "3.25", TermYears: 20},
		Commercial:    LoanTermsRequest{Principal: "500000", AnnualRatePercent: "4.9", TermYears: 30},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	combined := decode[CombinedResponse](t, rec)

	assert.Equal(t, "equal-installment", combined.Convention)
	assert.Equal(t, "1701.59", combined.ProvidentFund.MonthlyPayment)
	assert.Equal(t, "2653.63", combined.Commercial.MonthlyPayment)
	assert.Equal(t, "4355.22", combined.FirstMonthTotalPayment)
	assert.Equal(t, "800000.00", combined.TotalLoanAmount)
	assert.Equal(t, 360, combined.MaxMonths)
	assert.Empty(t, combined.Schedule)
}

func TestCreateCombined_Validation(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/combined", CombinedRequest{
		ProvidentFund: LoanTermsRequest{Principal: "x", AnnualRatePercent: "3.25", TermYears: 20},
		Commercial:    LoanTermsRequest{Principal: "500000", AnnualRatePercent: "y", TermYears: 30},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[ProblemDetails](t, rec)
	require.Len(t, problem.Errors, 2)
	assert.Equal(t, "providentFund.principal", problem.Errors[0].Field)
	assert.Equal(t, "commercial.annualRatePercent", problem.Errors[1].Field)
}

func TestCreateQuote_Caches(t *testing.T) {
	s := newTestServer(t)
	body := QuoteRequest{
		LoanTermsRequest: LoanTermsRequest{Principal: "1000000", AnnualRatePercent: "4.9", TermYears: 30},
		Convention:       "equal-installment",
	}

	first := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	quote := decode[QuoteResponse](t, first)
	assert.Equal(t, "5307.27", quote.Summary.MonthlyPayment)

	second := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingCache) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestCreateQuote_CacheFailureFallsBack(t *testing.T) {
	e := echo.New()
	h := NewQuoteHandler(failingCache{})

	payload := `{"principal":"54000","annualRatePercent":"0","termMonths":18,"includeSchedule":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewBufferString(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateQuote(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	quote := decode[QuoteResponse](t, rec)
	assert.Equal(t, "3000.00", quote.Summary.MonthlyPayment)
	assert.Equal(t, "0.00", quote.Summary.TotalInterest)
	assert.Len(t, quote.Schedule, 18)
}
