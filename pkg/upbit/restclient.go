package upbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tickerBatchSize is the maximum number of market codes Upbit accepts
// in a single /v1/ticker request.
const tickerBatchSize = 100

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// GetMarkets fetches the full list of tradeable markets.
func (c *RESTClient) GetMarkets(ctx context.Context) ([]Market, error) {
	var markets []Market
	if err := c.getJSON(ctx, "/v1/market/all?isDetails=false", &markets); err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	return markets, nil
}

// GetTickers fetches current ticker snapshots for the given market codes.
// Requests are batched because the ticker endpoint caps the number of
// markets per call.
func (c *RESTClient) GetTickers(ctx context.Context, markets []string) ([]Ticker, error) {
	tickers := make([]Ticker, 0, len(markets))

	for start := 0; start < len(markets); start += tickerBatchSize {
		end := start + tickerBatchSize
		if end > len(markets) {
			end = len(markets)
		}
		batch := markets[start:end]

		endpoint := "/v1/ticker?markets=" + url.QueryEscape(strings.Join(batch, ","))

		var batchTickers []Ticker
		if err := c.getJSON(ctx, endpoint, &batchTickers); err != nil {
			return nil, fmt.Errorf("fetch tickers (%d markets): %w", len(batch), err)
		}
		tickers = append(tickers, batchTickers...)
	}

	return tickers, nil
}

// getJSON performs a GET request against the Upbit public API and decodes
// the JSON response into out.
func (c *RESTClient) getJSON(ctx context.Context, endpoint string, out any) error {
	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Execute the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	// Check HTTP status code; Upbit wraps failures in an error envelope
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("upbit error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("upbit error (%d): %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
