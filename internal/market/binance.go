package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"kairos/internal/logger"
)

const maxHistoryLimit = 1000

// BinanceConfig describes the REST endpoint used for history/snapshot pulls.
type BinanceConfig struct {
	RESTBaseURL string
	HTTPTimeout time.Duration
}

func (c BinanceConfig) withDefaults() BinanceConfig {
	if strings.TrimSpace(c.RESTBaseURL) == "" {
		c.RESTBaseURL = "https://api.binance.com"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	return c
}

// BinanceSource implements HistorySource on top of the go-binance SDK.
type BinanceSource struct {
	cfg    BinanceConfig
	client *binance.Client
}

func NewBinanceSource(cfg BinanceConfig) *BinanceSource {
	final := cfg.withDefaults()
	client := binance.NewClient("", "")
	client.BaseURL = strings.TrimRight(final.RESTBaseURL, "/")
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &BinanceSource{cfg: final, client: client}
}

func (s *BinanceSource) FetchHistory(ctx context.Context, symbol, interval string, limit int) ([]PriceSample, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	interval = strings.ToLower(strings.TrimSpace(interval))
	if interval == "" {
		interval = "1h"
	}
	kls, err := s.client.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s %s: %w", symbol, interval, err)
	}
	out := make([]PriceSample, 0, len(kls))
	for _, k := range kls {
		px, err := decimal.NewFromString(k.Close)
		if err != nil {
			logger.Warnf("binance kline %s: bad close %q: %v", symbol, k.Close, err)
			continue
		}
		vol, err := decimal.NewFromString(k.Volume)
		if err != nil {
			logger.Warnf("binance kline %s: bad volume %q: %v", symbol, k.Volume, err)
			continue
		}
		out = append(out, PriceSample{
			Timestamp: time.UnixMilli(k.CloseTime),
			Price:     px.InexactFloat64(),
			Volume:    vol.InexactFloat64(),
		})
	}
	return out, nil
}

func (s *BinanceSource) FetchSnapshot(ctx context.Context, symbol string) (Snapshot, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return Snapshot{}, fmt.Errorf("symbol is required")
	}
	stats, err := s.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("binance 24h stats %s: %w", symbol, err)
	}
	if len(stats) == 0 {
		return Snapshot{}, fmt.Errorf("binance 24h stats %s: empty response", symbol)
	}
	st := stats[0]
	snap := Snapshot{Symbol: symbol}
	if v, err := decimal.NewFromString(st.LastPrice); err == nil {
		snap.CurrentPrice = v.InexactFloat64()
	}
	if v, err := decimal.NewFromString(st.PriceChangePercent); err == nil {
		snap.PriceChangePct24h = v.InexactFloat64()
	}
	if v, err := decimal.NewFromString(st.QuoteVolume); err == nil {
		snap.TotalVolume = v.InexactFloat64()
	}
	return snap, nil
}

// Binance rejects symbols containing separators (BTC/USDT -> BTCUSDT).
func normalizeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	symbol = strings.NewReplacer("/", "", "-", "", "_", "").Replace(symbol)
	return symbol
}
