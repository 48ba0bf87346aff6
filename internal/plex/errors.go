package plex

import "errors"

var (
	// ErrUnauthorized is returned when the server rejects the token.
	ErrUnauthorized = errors.New("plex: unauthorized")

	// ErrUnavailable is returned when the server cannot be reached.
	ErrUnavailable = errors.New("plex: server unavailable")

	// ErrUnexpectedStatus is returned for any other non-2xx response.
	ErrUnexpectedStatus = errors.New("plex: unexpected status")
)
