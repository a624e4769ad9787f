package order

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrOrderNotFound = errors.New("order not found")
	ErrLeadNotFound  = errors.New("lead not found")
)
