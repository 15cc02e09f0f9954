package types

import "errors"

var (
	// ErrInvalidArgument marks malformed or missing identifiers in a request.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCollaboratorUnavailable marks a failed lookup or send against an
	// external collaborator. The notifier recovers from it locally.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrUnauthenticated marks a request without a valid caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidTransition marks an illegal trade status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)
