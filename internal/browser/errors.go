package browser

import (
	"errors"
	"fmt"

	"github.com/saintfish/chardet"
)

// Sentinel errors surfaced by the navigation core. Match with errors.Is.
var (
	// ErrInvalidBody means the response bytes were not valid UTF-8. The tab
	// registry is left untouched when this is returned.
	ErrInvalidBody = errors.New("response body is not valid UTF-8")

	// ErrCancelled means the runtime shut down, or the reply channel was
	// dropped, before a navigation result arrived.
	ErrCancelled = errors.New("navigation cancelled before completion")

	// ErrRuntimeStopped is returned at submission time once the runtime has
	// begun shutting down. No job is created.
	ErrRuntimeStopped = errors.New("browser runtime is no longer running")
)

// NetworkError wraps any transport-layer failure (DNS, connect, TLS, timeout,
// redirect limit). The underlying cause is preserved for errors.As/Is.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network request for %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// invalidBodyError annotates ErrInvalidBody with a charset guess so the
// status line can say more than "not UTF-8".
func invalidBodyError(raw []byte) error {
	detector := chardet.NewTextDetector()
	if match, err := detector.DetectBest(raw); err == nil && match != nil && match.Charset != "" {
		return fmt.Errorf("%w (detected charset %s)", ErrInvalidBody, match.Charset)
	}
	return ErrInvalidBody
}
