package scanner

import (
	"context"
	"fmt"
	"sort"

	"upbitmonitor/pkg/upbit"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MarketData is the slice of the exchange client the scanner needs.
// *upbit.RESTClient satisfies it; tests substitute a fake.
type MarketData interface {
	GetMarkets(ctx context.Context) ([]upbit.Market, error)
	GetTickers(ctx context.Context, markets []string) ([]upbit.Ticker, error)
}

// Scanner classifies instruments in one quote-currency market as newly
// risen relative to a previous snapshot.
type Scanner struct {
	market    MarketData
	quote     string
	threshold decimal.Decimal
	logger    *zap.Logger
}

func New(market MarketData, quoteCurrency string, thresholdPct float64, logger *zap.Logger) *Scanner {
	return &Scanner{
		market:    market,
		quote:     quoteCurrency,
		threshold: decimal.NewFromFloat(thresholdPct),
		logger:    logger,
	}
}

// Scan fetches tickers for every instrument quoted in the configured
// currency and returns the updated snapshot (prev ∪ newly detected) plus
// the sorted list of newly detected symbols. Any fetch failure aborts the
// whole scan; prev is never modified.
func (s *Scanner) Scan(ctx context.Context, prev map[string]struct{}) (map[string]struct{}, []string, error) {
	markets, err := s.market.GetMarkets(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load markets: %w", err)
	}

	var codes []string
	for _, m := range markets {
		if upbit.QuoteCurrency(m.Market) == s.quote {
			codes = append(codes, m.Market)
		}
	}
	s.logger.Info("scanning market for risers",
		zap.String("quote", s.quote),
		zap.Int("instruments", len(codes)),
		zap.String("threshold_pct", s.threshold.String()))

	tickers, err := s.market.GetTickers(ctx, codes)
	if err != nil {
		return nil, nil, fmt.Errorf("load tickers: %w", err)
	}

	current := make(map[string]struct{}, len(prev))
	for sym := range prev {
		current[sym] = struct{}{}
	}

	var newly []string
	for _, tick := range tickers {
		pct, ok := tick.ChangePercent()
		if !ok || pct.LessThan(s.threshold) {
			continue
		}

		sym, err := upbit.MarketToSymbol(tick.Market)
		if err != nil {
			s.logger.Warn("skipping ticker with malformed market code",
				zap.String("market", tick.Market), zap.Error(err))
			continue
		}

		if _, seen := prev[sym]; seen {
			continue
		}

		s.logger.Info("new riser detected",
			zap.String("symbol", sym),
			zap.String("change_pct", pct.StringFixed(2)))
		current[sym] = struct{}{}
		newly = append(newly, sym)
	}
	sort.Strings(newly)

	return current, newly, nil
}
