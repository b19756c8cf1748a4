package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

// Fetcher retrieves almanac events for a span of whole months from a remote
// source. Implementations return well-formed events only; the store never
// re-validates beyond the date and identity fields.
type Fetcher interface {
	Fetch(ctx context.Context, year int, month time.Month, monthCount int) ([]tithi.Event, error)
}

// newHTTPClient is shared by the concrete fetchers. The timeout is the only
// cancellation policy the fetch boundary enforces on its own; callers layer
// retries on top.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
