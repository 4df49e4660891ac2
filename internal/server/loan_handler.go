package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/rpgo/mortgage-calculator/internal/store"
)

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	registry *store.Registry
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(registry *store.Registry) *LoanHandler {
	return &LoanHandler{registry: registry}
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req LoanTermsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	terms, errs := req.parse("")
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid loan terms", errs)
	}

	id, loan, err := h.registry.Create(terms)
	if err != nil {
		return writeDomainError(c, err)
	}

	resp, err := loanResponse(id, loan)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetLoan handles GET /api/v1/loans/:id
func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}

	resp, err := loanResponse(id, loan)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSchedule handles GET /api/v1/loans/:id/schedule?convention=
func (h *LoanHandler) GetSchedule(c echo.Context) error {
	id, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}

	convention, err := parseConventionParam(c.QueryParam("convention"))
	if err != nil {
		return writeDomainError(c, err)
	}

	schedule, err := loan.Schedule(convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, ScheduleResponse{
		LoanID:     id.String(),
		Convention: string(convention),
		Entries:    toEntryResponses(schedule),
	})
}

// GetComparison handles GET /api/v1/loans/:id/comparison
func (h *LoanHandler) GetComparison(c echo.Context) error {
	_, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}

	cmp, err := calculation.CompareConventions(loan)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, ComparisonResponse{
		EqualInstallment:   toSummaryResponse(cmp.EqualInstallment),
		EqualPrincipal:     toSummaryResponse(cmp.EqualPrincipal),
		InterestDifference: cmp.InterestDifference.StringFixed(2),
		Cheaper:            string(cmp.Cheaper),
	})
}

// GetPrepayments handles GET /api/v1/loans/:id/prepayments
func (h *LoanHandler) GetPrepayments(c echo.Context) error {
	_, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toPrepaymentResponses(loan.PrepaymentHistory()))
}

// AddPrepayment handles POST /api/v1/loans/:id/prepayments
func (h *LoanHandler) AddPrepayment(c echo.Context) error {
	id, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}

	var req PrepaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, errs := parseAmount("amount", req.Amount)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid prepayment", errs)
	}
	strategy, err := domain.ParseStrategy(req.Strategy)
	if err != nil {
		return writeDomainError(c, err)
	}
	convention, err := parseConventionParam(req.Convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	if err := loan.AddPrepayment(req.Month, amount, strategy, convention); err != nil {
		return writeDomainError(c, err)
	}

	resp, err := loanResponse(id, loan)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ClearPrepayments handles DELETE /api/v1/loans/:id/prepayments
func (h *LoanHandler) ClearPrepayments(c echo.Context) error {
	_, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	loan.ClearPrepayments()
	return c.NoContent(http.StatusNoContent)
}

// Preview handles POST /api/v1/loans/:id/preview. Nothing is committed.
func (h *LoanHandler) Preview(c echo.Context) error {
	_, loan, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}

	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, errs := parseAmount("amount", req.Amount)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid prepayment", errs)
	}
	convention, err := parseConventionParam(req.Convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	if req.Strategy == "" {
		cmp, err := calculation.ComparePrepaymentStrategies(loan, req.Month, amount, convention)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, PreviewResponse{
			ReduceTerm:    toOutcomeResponse(*cmp.ReduceTerm, req.IncludeSchedule),
			ReducePayment: toOutcomeResponse(*cmp.ReducePayment, req.IncludeSchedule),
		})
	}

	strategy, err := domain.ParseStrategy(req.Strategy)
	if err != nil {
		return writeDomainError(c, err)
	}
	outcome, err := loan.Preview(strategy, req.Month, amount, convention)
	if err != nil {
		return writeDomainError(c, err)
	}

	var resp PreviewResponse
	if strategy == domain.ReduceTerm {
		resp.ReduceTerm = toOutcomeResponse(outcome, req.IncludeSchedule)
	} else {
		resp.ReducePayment = toOutcomeResponse(outcome, req.IncludeSchedule)
	}
	return c.JSON(http.StatusOK, resp)
}

// parseConventionParam defaults to equal installment when s is empty.
func parseConventionParam(s string) (domain.Convention, error) {
	if s == "" {
		return domain.EqualInstallment, nil
	}
	return domain.ParseConvention(s)
}

func loanResponse(id uuid.UUID, loan *calculation.Loan) (LoanResponse, error) {
	resp := LoanResponse{
		ID:          id.String(),
		Terms:       toTermsResponse(loan.Terms()),
		Prepayments: toPrepaymentResponses(loan.PrepaymentHistory()),
	}
	for _, c := range domain.Conventions {
		summary, err := loan.Summary(c)
		if err != nil {
			return LoanResponse{}, err
		}
		saved, err := loan.InterestSaved(c)
		if err != nil {
			return LoanResponse{}, err
		}
		s := toSummaryResponse(summary)
		if saved.IsPositive() {
			s.InterestSaved = saved.StringFixed(2)
		}
		resp.Summaries = append(resp.Summaries, s)
	}
	return resp, nil
}
