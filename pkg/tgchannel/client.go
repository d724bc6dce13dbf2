package tgchannel

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// postLimit caps how many of the newest posts are returned per channel.
	postLimit = 5
	// minTextLen filters out stickers, reposts and other noise entries.
	minTextLen = 20
)

// Client scrapes recent posts from the public t.me channel preview pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    "https://t.me",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// RecentPosts returns the visible text of the channel's newest posts, oldest
// first. Decorative markup is stripped and short entries are discarded.
func (c *Client) RecentPosts(ctx context.Context, channel string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/s/"+channel, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("channel %s fetch: %w", channel, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("channel %s: unexpected status %s", channel, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("channel %s parse: %w", channel, err)
	}

	var texts []string
	doc.Find("div.tgme_widget_message_text").Each(func(_ int, s *goquery.Selection) {
		s.Find("tg-emoji").Remove()
		s.Find("br").ReplaceWithHtml(" ")
		text := strings.Join(strings.Fields(s.Text()), " ")
		if utf8.RuneCountInString(text) > minTextLen {
			texts = append(texts, text)
		}
	})

	// The preview page lists posts oldest first; keep the newest ones.
	if len(texts) > postLimit {
		texts = texts[len(texts)-postLimit:]
	}
	return texts, nil
}
