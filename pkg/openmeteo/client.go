package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client calls the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    "https://api.open-meteo.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// HourlyTemperatures returns today's hourly temperature forecast for the
// given coordinates, keyed by hour of day in the given timezone.
func (c *Client) HourlyTemperatures(ctx context.Context, lat, lon float64, tz string) (map[int]float64, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("hourly", "temperature_2m")
	q.Set("timezone", tz)
	q.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo: unexpected status %s", resp.Status)
	}

	var out struct {
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature2M []float64 `json:"temperature_2m"`
		} `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("open-meteo decode: %w", err)
	}
	if len(out.Hourly.Time) == 0 || len(out.Hourly.Time) != len(out.Hourly.Temperature2M) {
		return nil, fmt.Errorf("open-meteo: malformed hourly series")
	}

	temps := make(map[int]float64, len(out.Hourly.Time))
	for i, ts := range out.Hourly.Time {
		t, err := time.Parse("2006-01-02T15:04", ts)
		if err != nil {
			continue
		}
		temps[t.Hour()] = out.Hourly.Temperature2M[i]
	}
	return temps, nil
}
