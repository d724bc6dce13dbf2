package tradingeconomics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLast(t *testing.T) {
	page := `<html><head>
<script type="text/javascript">
var TEChartsMeta = [{"symbol":"XAUUSD:CUR","last":2400.456,"name":"Gold"}];
</script>
</head><body></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commodity/gold" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, httpClient: srv.Client()}
	got, err := c.Last(context.Background(), "/commodity/gold")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if got != 2400.46 {
		t.Fatalf("last = %v, want 2400.46", got)
	}
}

func TestLastMetadataMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>no charts here</body></html>")
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, httpClient: srv.Client()}
	if _, err := c.Last(context.Background(), "/commodity/gold"); err == nil {
		t.Fatal("expected error when charts metadata is absent")
	}
}
