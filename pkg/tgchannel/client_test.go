package tgchannel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{baseURL: srv.URL, httpClient: srv.Client()}
}

func TestRecentPosts(t *testing.T) {
	page := `<html><body>
<div class="tgme_widget_message_text js-message_text">Первая длинная новость о важном событии<br/>продолжение на второй строке</div>
<div class="tgme_widget_message_text js-message_text">коротко</div>
<div class="tgme_widget_message_text js-message_text">Вторая длинная новость <tg-emoji><b>🔥</b></tg-emoji> с декоративным эмодзи внутри</div>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/s/rbc_news" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	posts, err := newTestClient(srv).RecentPosts(context.Background(), "rbc_news")
	if err != nil {
		t.Fatalf("recent posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d: %v", len(posts), posts)
	}
	if !strings.Contains(posts[0], "продолжение на второй строке") {
		t.Fatalf("line break not flattened to space: %q", posts[0])
	}
	if strings.Contains(posts[1], "🔥") {
		t.Fatalf("decorative emoji not stripped: %q", posts[1])
	}
}

func TestRecentPostsKeepsNewest(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&sb, `<div class="tgme_widget_message_text">Новость номер %d с достаточно длинным текстом</div>`, i)
	}
	sb.WriteString("</body></html>")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sb.String())
	}))
	defer srv.Close()

	posts, err := newTestClient(srv).RecentPosts(context.Background(), "foo")
	if err != nil {
		t.Fatalf("recent posts: %v", err)
	}
	if len(posts) != postLimit {
		t.Fatalf("expected %d posts, got %d", postLimit, len(posts))
	}
	if !strings.Contains(posts[0], "номер 3") || !strings.Contains(posts[4], "номер 7") {
		t.Fatalf("expected the newest posts, got %v", posts)
	}
}

func TestRecentPostsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).RecentPosts(context.Background(), "foo"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
