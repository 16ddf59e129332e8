package domain

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrConflict      = errors.New("record conflicts with an existing one")
	ErrInvalidRecord = errors.New("invalid record")
)
