package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/store"
	"github.com/rs/zerolog/log"
)

// QuoteHandler serves stateless schedule quotes through a cache
type QuoteHandler struct {
	cache store.QuoteCache
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(cache store.QuoteCache) *QuoteHandler {
	return &QuoteHandler{cache: cache}
}

// CreateQuote handles POST /api/v1/quotes. A cache failure degrades to a
// fresh computation.
func (h *QuoteHandler) CreateQuote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	terms, errs := req.parse("")
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid loan terms", errs)
	}
	convention, err := parseConventionParam(req.Convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx := c.Request().Context()
	key := store.QuoteKey(terms, convention)
	if req.IncludeSchedule {
		key += ":schedule"
	}

	cached, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Quote cache read failed")
	}
	if ok {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSONBlob(http.StatusOK, cached)
	}

	schedule, err := calculation.GenerateSchedule(terms, convention)
	if err != nil {
		return writeDomainError(c, err)
	}
	resp := QuoteResponse{
		Terms:   toTermsResponse(terms),
		Summary: toSummaryResponse(calculation.Summarize(schedule, convention, terms.Principal)),
	}
	if req.IncludeSchedule {
		resp.Schedule = toEntryResponses(schedule)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode quote")
		return NewInternalError(c, "Failed to encode quote")
	}
	if err := h.cache.Set(ctx, key, body); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Quote cache write failed")
	}

	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSONBlob(http.StatusOK, body)
}
