package tradingeconomics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// The quote pages embed their chart data as a TEChartsMeta script variable.
var chartsMetaRe = regexp.MustCompile(`(?s)TEChartsMeta\s*=\s*(\[.*?\]);`)

// Client scrapes quote pages on tradingeconomics.com.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    "https://tradingeconomics.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Last returns the most recent quote published on the given page path, for
// example "/commodity/urals-oil", rounded to two decimals.
func (c *Client) Last(ctx context.Context, page string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+page, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("tradingeconomics fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tradingeconomics: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("tradingeconomics parse: %w", err)
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := chartsMetaRe.FindStringSubmatch(s.Text()); m != nil {
			payload = m[1]
			return false
		}
		return true
	})
	if payload == "" {
		return 0, fmt.Errorf("tradingeconomics: charts metadata not found on %s", page)
	}

	var meta []struct {
		Last float64 `json:"last"`
	}
	if err := json.Unmarshal([]byte(strings.ReplaceAll(payload, `\/`, "/")), &meta); err != nil {
		return 0, fmt.Errorf("tradingeconomics decode: %w", err)
	}
	if len(meta) == 0 {
		return 0, fmt.Errorf("tradingeconomics: empty charts metadata on %s", page)
	}
	return math.Round(meta[0].Last*100) / 100, nil
}
