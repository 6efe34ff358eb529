package persistence

import "errors"

// Static error variables shared by all persistence implementations.
var (
	ErrCommandNotFound = errors.New("command record not found")
	ErrInvalidRecord   = errors.New("command record is invalid")
)
