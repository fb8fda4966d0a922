package service

import "errors"

var (
	// ErrInvalidListLimit is returned when a caller asks for a negative
	// listing size.
	ErrInvalidListLimit = errors.New("invalid list limit")
)
