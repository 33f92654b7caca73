package domain

import "errors"

var (
	// ErrDuplicateHeader header row contains the same column name twice
	ErrDuplicateHeader = errors.New("domain: duplicate header column")

	// ErrMissingColumn header row lacks a column of the booking schema
	ErrMissingColumn = errors.New("domain: header is missing a booking column")
)
