package domain

import "errors"

// Business-rule violations are surfaced as wrapped sentinel errors so
// callers can branch with errors.Is and render a deterministic response.
// Failures of external collaborators (database, mail) are wrapped with
// %w but do not match any of these sentinels.
var (
	ErrNotFound        = errors.New("not found")
	ErrPolicyViolation = errors.New("policy violation")
	ErrUnavailable     = errors.New("unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
)
