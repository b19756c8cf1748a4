package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

// JSONFetcher pulls the published almanac dataset: a single JSON document
// holding every event, filtered down to the requested window client-side.
type JSONFetcher struct {
	url    string
	client *http.Client
}

func NewJSONFetcher(url string) *JSONFetcher {
	return &JSONFetcher{url: url, client: newHTTPClient()}
}

func (f *JSONFetcher) Fetch(ctx context.Context, year int, month time.Month, monthCount int) ([]tithi.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %s", resp.Status)
	}

	var pool []tithi.Event
	if err := json.NewDecoder(resp.Body).Decode(&pool); err != nil {
		return nil, fmt.Errorf("failed to decode feed payload: %w", err)
	}

	events := tithi.ResolveRange(year, month, monthCount, pool)
	log.Debugf("json feed returned %d events, %d in requested window", len(pool), len(events))
	return events, nil
}
