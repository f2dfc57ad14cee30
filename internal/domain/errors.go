package domain

import (
	"errors"
	"fmt"
)

var ErrDuplicateTaxID = errors.New("tax id is already registered")
var ErrInvalidEnrollmentDate = errors.New("enrollment date cannot be in the future")
var ErrCompanyNotFound = errors.New("company not found")
var ErrSameCompanyTransfer = errors.New("debit and credit accounts belong to the same company")
var ErrAccountMismatch = errors.New("credit account number does not belong to the company")
var ErrInvalidAmount = errors.New("amount must be greater than zero")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrIdentifierCollision = errors.New("generated identifier already in use")

// DuplicateRequestError signals that an idempotency key was already
// captured. It carries the stored response so the caller can replay it
// verbatim.
type DuplicateRequestError struct {
	Key            string
	ResponseBody   []byte
	ResponseStatus int
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("duplicate request for idempotency key %q", e.Key)
}
