package repository

import (
	"context"
	"errors"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (memory, redis) inside this directory.

// ErrPatientIDRequired is returned when a store operation gets an empty key.
var ErrPatientIDRequired = errors.New("patient id is required")

// UpdateFunc receives the current record text (ok is false when none exists)
// and returns the text to store. Returning an error aborts the update.
type UpdateFunc func(current string, ok bool) (string, error)

// RecordStore holds free-text patient records keyed by patient id.
// Values are stored verbatim; no truncation happens here.
type RecordStore interface {
	// Get returns the record text and whether one exists.
	Get(ctx context.Context, patientID string) (string, bool, error)

	// Put replaces the record text.
	Put(ctx context.Context, patientID, text string) error

	// Delete removes a record. Missing records are not an error.
	Delete(ctx context.Context, patientID string) error

	// Update performs an atomic read-modify-write of one record and returns
	// the stored value.
	Update(ctx context.Context, patientID string, fn UpdateFunc) (string, error)

	// Len returns the number of stored records.
	Len(ctx context.Context) (int, error)
}
