package service

import (
	"context"

	"github.com/piquette/finance-go/future"
	"github.com/rs/zerolog"
)

// Yahoo future symbols for the exchange-traded commodities. Urals and the
// ruble fix are not quoted there and come from the tradingeconomics pages.
var commodityFutures = map[string]string{
	"gold":   "GC=F",
	"silver": "SI=F",
	"brent":  "BZ=F",
}

var scrapedPages = map[string]string{
	"urals": "/commodity/urals-oil",
	"usd":   "/russia/currency",
}

// QuotePage scrapes a single quote off a tradingeconomics page.
type QuotePage interface {
	Last(ctx context.Context, page string) (float64, error)
}

// MarketService aggregates commodity quotes from the futures market and the
// tradingeconomics pages.
type MarketService struct {
	pages   QuotePage
	futures func(symbol string) (float64, error)
	logger  zerolog.Logger
}

func NewMarketService(pages QuotePage, logger zerolog.Logger) *MarketService {
	return &MarketService{pages: pages, futures: futureQuote, logger: logger}
}

func futureQuote(symbol string) (float64, error) {
	f, err := future.Get(symbol)
	if err != nil {
		return 0, err
	}
	return f.Quote.RegularMarketPrice, nil
}

// Commodities returns quotes keyed by the report's commodity names. Providers
// that fail are logged and omitted from the result.
func (s *MarketService) Commodities(ctx context.Context) map[string]float64 {
	out := map[string]float64{}
	for name, symbol := range commodityFutures {
		v, err := s.futures(symbol)
		if err != nil {
			s.logger.Error().Err(err).Str("commodity", name).Msg("future quote unavailable")
			continue
		}
		out[name] = v
	}
	for name, page := range scrapedPages {
		v, err := s.pages.Last(ctx, page)
		if err != nil {
			s.logger.Error().Err(err).Str("commodity", name).Msg("page quote unavailable")
			continue
		}
		out[name] = v
	}
	return out
}
