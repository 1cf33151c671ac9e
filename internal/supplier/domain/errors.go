package domain

import "errors"

var (
	ErrInvalidCNPJ      = errors.New("cnpj must be exactly 14 digits")
	ErrInvalidName      = errors.New("supplier name is required")
	ErrInvalidTaxRegime = errors.New("tax regime must be one of SN, N, MEI")
	ErrDuplicate        = errors.New("supplier already exists")
	ErrNotFound         = errors.New("supplier not found")
)
