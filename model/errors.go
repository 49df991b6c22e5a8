package model

import "errors"

var (
	ErrNotFound        = errors.New("loregraph: not found")
	ErrConflict        = errors.New("loregraph: conflict")
	ErrUnknownType     = errors.New("loregraph: unknown type")
	ErrSchemaViolation = errors.New("loregraph: schema violation")
	ErrIOFailure       = errors.New("loregraph: io failure")
)
