package services

import "errors"

var (
	// ErrInvalidInput marks a malformed or missing request parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the query found no qualifying data.
	ErrNotFound = errors.New("no data found")
	// ErrNameNotFound means no record exists for the given name.
	ErrNameNotFound = errors.New("name does not exist")
	// ErrStaleDate means the update date is not after the stored date.
	ErrStaleDate = errors.New("update date must be after the existing date")
)
