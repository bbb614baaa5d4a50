package pager

import (
	"errors"

	"github.com/seralin/inkwell/internal/api"
	"github.com/seralin/inkwell/internal/domain"
)

// Humanize normalizes a fetch failure to a display string. Server-supplied
// messages win; otherwise the resource-specific fallback; otherwise a generic
// one. Transport failures never surface raw error text.
func Humanize(err error, fallback string) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return "Network error. Check your connection and try again."
	case errors.Is(err, domain.ErrAuthFailed):
		return "You need to sign in to view this."
	case errors.Is(err, domain.ErrNotFound):
		if fallback != "" {
			return fallback
		}
		return "Not found."
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if fallback != "" {
		return fallback
	}
	return "Request failed."
}
