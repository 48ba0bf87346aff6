package arr

import "errors"

// Sentinel errors for Sonarr/Radarr API calls.
var (
	// ErrUnavailable indicates the service could not be reached.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("invalid api key")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnexpectedStatus indicates any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
)
