package domain

import "errors"

var (
	ErrInvalidID            = errors.New("invalid invoice id")
	ErrInvalidNumber        = errors.New("invoice number is required")
	ErrInvalidDate          = errors.New("dates must be in YYYY-MM-DD format")
	ErrInvalidValue         = errors.New("invoice value must not be negative")
	ErrInvalidMaterial      = errors.New("material deduction must be between 0 and the invoice value")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrDuplicate            = errors.New("invoice already exists")
	ErrNotFound             = errors.New("invoice not found")
	ErrUnsupportedOverrides = errors.New("per-invoice rate overrides are not supported")
)
