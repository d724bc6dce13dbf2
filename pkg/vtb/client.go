package vtb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client calls the VTB currency conversion endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    "https://www.vtb.ru",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Rate returns the bank's conversion rate between the two currencies.
func (c *Client) Rate(ctx context.Context, from, to string) (float64, error) {
	body := map[string]any{
		"categoryId":     1,
		"categoryTypeId": 1,
		"currencyFrom":   from,
		"currencyTo":     to,
		"fromSumma":      100000,
		"toSumma":        0,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/currencyrates/convert", bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("vtb fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("vtb: unexpected status %s", resp.Status)
	}

	var out struct {
		FromRate float64 `json:"fromRate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("vtb decode: %w", err)
	}
	return out.FromRate, nil
}
