package store

import "errors"

// ErrKeyNotFound is returned by stores and databases when a key is absent.
var ErrKeyNotFound = errors.New("KeyNotFound")

// Store is the interface for key/value storages with typed values.
type Store interface {
	Put(key []byte, value interface{}) error
	Delete(key []byte) error
	Get(key []byte, value interface{}) error
}
