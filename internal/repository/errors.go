// Package repository contains the data access layer for the hosted
// MySQL backend.  Each repository owns the raw SQL for one area of
// the schema and knows nothing about the local fallback tier; the
// store layer composes the two.
package repository

import "errors"

// ErrNotFound is returned when a query matches no row.  Stores treat
// it differently from connectivity failures: a missing row is a real
// answer, not a reason to fall back to local data.
var ErrNotFound = errors.New("record not found")
