package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dakotalabs/glstream/internal/ledger"
)

// Client pulls record batches from the API's /get-gl-batch endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	limit   int
}

func NewClient(baseURL string, limit int, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limit:   limit,
	}
}

type batchPayload struct {
	Count int             `json:"count"`
	Data  []ledger.Record `json:"data"`
}

func (c *Client) FetchSince(ctx context.Context, watermark int64) ([]ledger.Record, error) {
	params := url.Values{
		"since_id": {strconv.FormatInt(watermark, 10)},
		"limit":    {strconv.Itoa(c.limit)},
	}

	return c.fetch(ctx, params)
}

func (c *Client) FetchWindow(ctx context.Context, start, end time.Time) ([]ledger.Record, error) {
	params := url.Values{
		"start_date": {start.Format(time.DateOnly)},
		"end_date":   {end.Format(time.DateOnly)},
		"limit":      {strconv.Itoa(c.limit)},
	}

	return c.fetch(ctx, params)
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]ledger.Record, error) {
	endpoint := c.baseURL + "/get-gl-batch?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, endpoint)
	}

	var payload batchPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding batch response: %w", err)
	}

	return payload.Data, nil
}
