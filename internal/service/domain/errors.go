package domain

import "errors"

var (
	ErrInvalidCode        = errors.New("service code is required")
	ErrInvalidDescription = errors.New("service description is required")
	ErrInvalidRate        = errors.New("rates must be between 0 and 10000 basis points")
	ErrDuplicate          = errors.New("service already exists")
	ErrNotFound           = errors.New("service not found")
)
