package storage

import "errors"

var (
	// Note: there is another not found error: badger.ErrKeyNotFound. The
	// difference between badger.ErrKeyNotFound and storage.ErrNotFound is that
	// badger.ErrKeyNotFound is the error returned by the badger API, while
	// storage/archive returns storage.ErrNotFound for its own not-found cases.
	ErrNotFound = errors.New("key not found")

	ErrAlreadyExists = errors.New("key already exists")
)
