package service

import "errors"

var (
	// ErrQuotaExceeded is surfaced synchronously to the caller before any
	// external call is made.
	ErrQuotaExceeded = errors.New("generation quota exceeded for the current period")

	// ErrCanonicalConflict means a concurrent job won the topic creation
	// race; the caller must re-resolve instead of failing.
	ErrCanonicalConflict = errors.New("canonical topic resolution conflict")

	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("record does not belong to the user")
)
