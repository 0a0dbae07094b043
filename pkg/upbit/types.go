package upbit

import "github.com/shopspring/decimal"

// Market represents one entry from Upbit's market listing endpoint
// (GET /v1/market/all). The market code uses the "QUOTE-BASE" form,
// e.g. "KRW-BTC".
type Market struct {
	Market      string `json:"market"`       // e.g., "KRW-BTC"
	KoreanName  string `json:"korean_name"`  // e.g., "비트코인"
	EnglishName string `json:"english_name"` // e.g., "Bitcoin"
}

// Ticker represents a single ticker snapshot from GET /v1/ticker.
// Only the fields the monitor consumes are decoded; the endpoint
// returns many more.
type Ticker struct {
	Market           string           `json:"market"`             // e.g., "KRW-BTC"
	TradePrice       decimal.Decimal  `json:"trade_price"`        // Last traded price in the quote currency
	SignedChangeRate *decimal.Decimal `json:"signed_change_rate"` // 24h change as a signed fraction (0.05 == +5%); may be absent
	AccTradePrice24H decimal.Decimal  `json:"acc_trade_price_24h"`
	Timestamp        int64            `json:"timestamp"` // Server timestamp (milliseconds since epoch)
}

// ChangePercent returns the 24h change as a percentage (5 == +5%).
// ok is false when the exchange omitted the change rate, in which case
// the ticker must be excluded from threshold checks.
func (t Ticker) ChangePercent() (pct decimal.Decimal, ok bool) {
	if t.SignedChangeRate == nil {
		return decimal.Decimal{}, false
	}
	return t.SignedChangeRate.Mul(decimal.NewFromInt(100)), true
}

// apiError is Upbit's error envelope for non-2xx responses.
type apiError struct {
	Error struct {
		Name    any    `json:"name"` // Upbit returns either a string or a numeric code here
		Message string `json:"message"`
	} `json:"error"`
}
