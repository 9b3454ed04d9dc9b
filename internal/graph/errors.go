package graph

import (
	"errors"
	"net/http"
)

// Error types for Microsoft Graph API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("graph: unauthorised")

	// ErrForbidden indicates the user lacks permission for the requested resource.
	ErrForbidden = errors.New("graph: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrRateLimited indicates the request was throttled by Microsoft Graph.
	ErrRateLimited = errors.New("graph: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("graph: bad request")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("graph: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsUnauthorised reports whether the error means the access token was
// rejected and the user has to sign in again.
func IsUnauthorised(err error) bool {
	return errors.Is(err, ErrUnauthorised)
}

// IsRateLimited checks if the status code indicates rate limiting.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}

// IsNotFound reports whether the error means the requested resource does
// not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether the error is transient and the request can
// be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError)
}
