package service

import "errors"

// Centralized service layer errors.
// Store failures are passed through unchanged as repository errors.
var (
	ErrUnknownEntity = errors.New("unknown entity")
)
