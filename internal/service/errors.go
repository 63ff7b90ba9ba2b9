package service

import "errors"

// Expected outcomes are surfaced to the caller with their message.
// ErrInconsistentState and anything unrecognized are logged in full
// server-side and mapped to a generic message at the boundary.
var (
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrProvisioningFailed means the external identity call failed; no
	// local write has been committed.
	ErrProvisioningFailed = errors.New("identity provisioning failed")

	// ErrInconsistentState means the identity provider reported success but
	// the local mirror row is missing - the two systems have diverged.
	ErrInconsistentState = errors.New("identity created but local mirror missing")
)
