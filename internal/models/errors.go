package models

import "errors"

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateKey  = errors.New("duplicate key violation")
	ErrInvalidSeason = errors.New("invalid season")
	ErrInvalidRecord = errors.New("invalid record")
)
