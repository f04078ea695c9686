package notion

import (
	"errors"
	"fmt"
)

// Error codes returned by the content source.
const (
	CodeObjectNotFound     = "object_not_found"
	CodeUnauthorized       = "unauthorized"
	CodeRestrictedResource = "restricted_resource"
	CodeRateLimited        = "rate_limited"
)

var (
	ErrNotFound        = errors.New("notion: object not found")
	ErrUnauthorized    = errors.New("notion: unauthorized")
	ErrRestricted      = errors.New("notion: restricted resource")
	ErrInvalidResponse = errors.New("notion: response has no results")
)

// APIError is the error object the API returns with non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notion: %s (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("notion: %s (status %d): %s", e.Code, e.Status, e.Message)
}

// Is maps API error codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == CodeObjectNotFound
	case ErrUnauthorized:
		return e.Code == CodeUnauthorized
	case ErrRestricted:
		return e.Code == CodeRestrictedResource
	}
	return false
}

// CodeOf extracts the API error code from err, or "" for transport errors.
func CodeOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func retryable(status int) bool {
	return status == 429 || status >= 500
}
