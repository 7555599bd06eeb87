// Package repository holds the storage errors shared by the MongoDB and
// in-memory implementations.
package repository

import "errors"

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)
