package store

import "errors"

var (
	// ErrNotFound is returned by replace operations when the keyed record
	// does not exist. Point reads return (nil, nil) for absent records.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned by inserts when the primary key
	// (username or id) is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
)
