package openmeteo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHourlyTemperatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("hourly") != "temperature_2m" {
			t.Errorf("unexpected hourly param %q", r.URL.Query().Get("hourly"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"hourly": map[string]any{
				"time":           []string{"2026-08-31T09:00", "2026-08-31T12:00", "2026-08-31T21:00"},
				"temperature_2m": []float64{5.0, 7.5, -1.2},
			},
		})
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, httpClient: srv.Client()}
	temps, err := c.HourlyTemperatures(context.Background(), 55.7558, 37.6173, "Europe/Moscow")
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(temps) != 3 || temps[9] != 5.0 || temps[12] != 7.5 || temps[21] != -1.2 {
		t.Fatalf("unexpected temperatures %v", temps)
	}
}

func TestHourlyTemperaturesMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"hourly": map[string]any{
				"time":           []string{"2026-08-31T09:00"},
				"temperature_2m": []float64{},
			},
		})
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, httpClient: srv.Client()}
	if _, err := c.HourlyTemperatures(context.Background(), 55.7558, 37.6173, "Europe/Moscow"); err == nil {
		t.Fatal("expected error for mismatched series lengths")
	}
}
