package domain

import "errors"

var (
	// ErrAccountNotFound aborts a whole batch: a posting rule must never
	// fall back to a substitute account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnbalancedBatch means total debit != total credit. The batch is
	// rejected before anything is written.
	ErrUnbalancedBatch = errors.New("journal batch is not balanced")

	// ErrInvalidPeriod is returned when a report period ends before it starts.
	ErrInvalidPeriod = errors.New("invalid report period")
)
