package domain

import "errors"

// Domain errors
var (
	ErrInvalidMonth      = errors.New("invalid prepayment month")
	ErrInvalidAmount     = errors.New("invalid prepayment amount")
	ErrInvalidTerms      = errors.New("invalid loan terms")
	ErrUnknownConvention = errors.New("unknown repayment convention")
	ErrUnknownStrategy   = errors.New("unknown prepayment strategy")
	ErrLoanNotFound      = errors.New("loan not found")
)
