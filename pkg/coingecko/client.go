package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client calls the CoinGecko simple price endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    "https://api.coingecko.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Price returns the current price of the given coin in the given currency.
func (c *Client) Price(ctx context.Context, id, vs string) (float64, error) {
	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", vs)
	q.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/simple/price?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko: unexpected status %s", resp.Status)
	}

	var out map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("coingecko decode: %w", err)
	}
	price, ok := out[id][vs]
	if !ok {
		return 0, fmt.Errorf("coingecko: no %s price for %s in response", vs, id)
	}
	return price, nil
}
