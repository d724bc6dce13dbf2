package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

const placeholderLine = "  Данные недоступны"

const (
	moscowLat = 55.7558
	moscowLon = 37.6173
)

var reportHours = []int{9, 12, 15, 18, 21}

var (
	commodityOrder = []string{"usd", "brent", "urals", "gold", "silver"}
	commodityNames = map[string]string{
		"usd":    "Доллар",
		"brent":  "Нефть Brent",
		"urals":  "Нефть Urals",
		"gold":   "Золото",
		"silver": "Серебро",
	}
)

// MoscowLocation returns the report timezone.
func MoscowLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// CurrencyRates is the part of the bank client the report uses.
type CurrencyRates interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// CryptoPrices is the part of the crypto client the report uses.
type CryptoPrices interface {
	Price(ctx context.Context, id, vs string) (float64, error)
}

// CommodityQuotes supplies the name-keyed commodity quote table.
type CommodityQuotes interface {
	Commodities(ctx context.Context) map[string]float64
}

// WeatherForecast supplies today's hourly temperatures.
type WeatherForecast interface {
	HourlyTemperatures(ctx context.Context, lat, lon float64, tz string) (map[int]float64, error)
}

// ReportService composes the multi-section market digest. Every section is
// rendered independently; a section that cannot produce any data degrades to
// a fixed placeholder line, so generation itself never fails.
type ReportService struct {
	currency CurrencyRates
	crypto   CryptoPrices
	markets  CommodityQuotes
	weather  WeatherForecast
	logger   zerolog.Logger
	loc      *time.Location
}

func NewReportService(currency CurrencyRates, crypto CryptoPrices, markets CommodityQuotes, weather WeatherForecast, logger zerolog.Logger) *ReportService {
	return &ReportService{
		currency: currency,
		crypto:   crypto,
		markets:  markets,
		weather:  weather,
		logger:   logger,
		loc:      MoscowLocation(),
	}
}

// Generate builds the digest text for the current Moscow date.
func (s *ReportService) Generate(ctx context.Context) string {
	date := time.Now().In(s.loc).Format("02.01.2006")

	sections := []struct {
		header string
		render func(context.Context) []string
	}{
		{"💱 *Курсы валют (ВТБ):*", s.currencyLines},
		{"₿ *Крипта:*", s.cryptoLines},
		{"🏦 *Биржевые котировки:*", s.commodityLines},
		{fmt.Sprintf("🌤 *Погода в Москве (%s):*", date), s.weatherLines},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Сводка на %s*\n", date)
	for _, sec := range sections {
		lines := sec.render(ctx)
		if len(lines) == 0 {
			lines = []string{placeholderLine}
		}
		b.WriteString("\n" + sec.header + "\n")
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *ReportService) currencyLines(ctx context.Context) []string {
	pairs := []struct {
		code    string
		divisor float64
	}{
		{"USD", 1},
		{"EUR", 1},
		// the bank quotes CNY per 10 units
		{"CNY", 10},
	}
	var lines []string
	for _, p := range pairs {
		rate, err := s.currency.Rate(ctx, "RUB", p.code)
		if err != nil {
			s.logger.Error().Err(err).Str("currency", p.code).Msg("currency rate unavailable")
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %s ₽", p.code, formatRate(rate/p.divisor)))
	}
	return lines
}

func (s *ReportService) cryptoLines(ctx context.Context) []string {
	coins := []struct {
		id, label string
	}{
		{"bitcoin", "Bitcoin"},
		{"ethereum", "Ethereum"},
	}
	var lines []string
	for _, coin := range coins {
		price, err := s.crypto.Price(ctx, coin.id, "usd")
		if err != nil {
			s.logger.Error().Err(err).Str("coin", coin.id).Msg("crypto price unavailable")
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: $%s", coin.label, humanize.Comma(int64(math.Round(price)))))
	}
	return lines
}

func (s *ReportService) commodityLines(ctx context.Context) []string {
	quotes := s.markets.Commodities(ctx)
	var lines []string
	for _, key := range commodityOrder {
		v, ok := quotes[key]
		if !ok {
			continue
		}
		unit := "$"
		if key == "usd" {
			unit = "₽"
		}
		lines = append(lines, fmt.Sprintf("  %s: %s %s", commodityNames[key], formatQuote(v), unit))
	}
	return lines
}

func (s *ReportService) weatherLines(ctx context.Context) []string {
	temps, err := s.weather.HourlyTemperatures(ctx, moscowLat, moscowLon, "Europe/Moscow")
	if err != nil {
		s.logger.Error().Err(err).Msg("weather forecast unavailable")
		return nil
	}
	var lines []string
	for _, hour := range reportHours {
		t, ok := temps[hour]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %02d:00: %+.1f°C", hour, t))
	}
	return lines
}

// formatRate renders a rate with its source precision, keeping at least one
// decimal so whole values still read as prices.
func formatRate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatQuote(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
