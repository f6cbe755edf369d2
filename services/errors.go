package services

import "errors"

var (
	// ErrNotSignedIn means no identity is bound; all write operations are blocked.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrInvalidArgument means the actor/target ids are missing or equal.
	ErrInvalidArgument = errors.New("invalid argument")
)
