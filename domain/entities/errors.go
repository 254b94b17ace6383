package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the root of every "element or item is absent" failure
	ErrNotFound = errors.New("not found")

	// ErrNoSuchElement is returned by drivers when a locator matches nothing
	ErrNoSuchElement = fmt.Errorf("no such element: %w", ErrNotFound)

	// ErrStaleElement is returned when a held element was detached from the document
	ErrStaleElement = errors.New("stale element reference")

	// ErrTypeMismatch is returned when a value read from the page has an unexpected shape
	ErrTypeMismatch = errors.New("unexpected value type")

	// ErrVerification is returned when a write is read back with a different value
	ErrVerification = errors.New("verification failed")

	// ErrNotImplemented marks shapes the suite knows about but does not handle
	ErrNotImplemented = errors.New("not implemented")

	// ErrTimeout is returned when a bounded wait expires
	ErrTimeout = errors.New("timed out")
)
