package sync

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"

	"github.com/harrisonrobin/goalplan/pkg/auth"
)

// Failure taxonomy for provider calls. The HTTP layer maps these onto status
// codes so the UI can decide between prompting re-authentication and offering
// a plain retry.
var (
	ErrNotAuthenticated = errors.New("not authenticated with calendar provider")
	ErrProviderRejected = errors.New("calendar provider rejected the request")
	ErrTransient        = errors.New("transient calendar provider error")
)

// Classify wraps a raw provider error with the matching taxonomy sentinel.
// 401 means the credential is bad, other 4xx mean the request was refused,
// 5xx and transport failures are treated as transient.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrNoToken) {
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 401:
			return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
		case gerr.Code >= 400 && gerr.Code < 500:
			return fmt.Errorf("%w: %w", ErrProviderRejected, err)
		default:
			return fmt.Errorf("%w: %w", ErrTransient, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}
