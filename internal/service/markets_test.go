package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubPage struct {
	quotes map[string]float64
}

func (s stubPage) Last(ctx context.Context, page string) (float64, error) {
	v, ok := s.quotes[page]
	if !ok {
		return 0, errors.New("page unavailable")
	}
	return v, nil
}

func TestMarketService_Commodities(t *testing.T) {
	svc := NewMarketService(stubPage{quotes: map[string]float64{
		"/commodity/urals-oil": 62.3,
		"/russia/currency":     81.5,
	}}, zerolog.Nop())
	svc.futures = func(symbol string) (float64, error) {
		switch symbol {
		case "GC=F":
			return 2400, nil
		case "SI=F":
			return 0, errors.New("no quote")
		case "BZ=F":
			return 84.55, nil
		}
		return 0, errors.New("unknown symbol")
	}

	got := svc.Commodities(context.Background())
	want := map[string]float64{"gold": 2400, "brent": 84.55, "urals": 62.3, "usd": 81.5}
	if len(got) != len(want) {
		t.Fatalf("unexpected quotes %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("quote %s = %v, want %v", k, got[k], v)
		}
	}
	if _, ok := got["silver"]; ok {
		t.Fatal("failed provider should be omitted")
	}
}
