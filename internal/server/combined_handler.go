package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rpgo/mortgage-calculator/internal/calculation"
)

// CombinedHandler handles provident-fund plus commercial loan requests
type CombinedHandler struct{}

// NewCombinedHandler creates a new CombinedHandler
func NewCombinedHandler() *CombinedHandler {
	return &CombinedHandler{}
}

// CreateCombined handles POST /api/v1/combined
func (h *CombinedHandler) CreateCombined(c echo.Context) error {
	var req CombinedRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	pf, pfErrs := req.ProvidentFund.parse("providentFund.")
	comm, commErrs := req.Commercial.parse("commercial.")
	if errs := append(pfErrs, commErrs...); len(errs) > 0 {
		return NewValidationError(c, "Invalid tranche terms", errs)
	}

	convention, err := parseConventionParam(req.Convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	loan, err := calculation.CreateCombinedLoan(pf, comm, convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, toCombinedResponse(loan.Summary(), loan.Schedule(), req.IncludeSchedule))
}
