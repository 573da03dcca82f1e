// Package services defines the business logic sitting between the HTTP
// handlers and the synchronizer/repositories: roster merging, local
// override person lifecycle, and registration creation with eligibility
// validation.
//
// This file centralizes common service-level error values. Translation
// into HTTP status codes happens at the handler layer.
package services

import "errors"

var (
	// ErrPersonNotFound indicates the requested person exists neither in
	// the external registry roster nor in the local override store.
	ErrPersonNotFound = errors.New("person not found")

	// ErrPersonNotLocal is returned when a mutation targets a record owned
	// by the external registry. Only local override persons are mutable.
	ErrPersonNotLocal = errors.New("person is not a local record")

	// ErrTournamentNotFound indicates the referenced tournament does not
	// exist.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrMissingExternalID is returned when a local person is created
	// without an external identifier; such a record could never be used
	// for registration.
	ErrMissingExternalID = errors.New("external identifier is required")

	// ErrUnknownMember is returned when a registration references an
	// external identifier that resolves to no person.
	ErrUnknownMember = errors.New("registration member not found")
)
