package coingecko

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") != "bitcoin" {
			t.Errorf("unexpected ids %q", r.URL.Query().Get("ids"))
		}
		json.NewEncoder(w).Encode(map[string]map[string]float64{
			"bitcoin": {"usd": 60000},
		})
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, httpClient: srv.Client()}
	price, err := c.Price(context.Background(), "bitcoin", "usd")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if price != 60000 {
		t.Fatalf("price = %v, want 60000", price)
	}
}

func TestPriceMissingCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]map[string]float64{})
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, httpClient: srv.Client()}
	if _, err := c.Price(context.Background(), "bitcoin", "usd"); err == nil {
		t.Fatal("expected error when coin is absent from response")
	}
}
