package upbit

import (
	"fmt"
	"strings"
)

// Upbit market codes are "QUOTE-BASE" (e.g. "KRW-BTC") while the rest of
// this codebase uses the conventional "BASE/QUOTE" symbol form
// (e.g. "BTC/KRW"). Snapshot files and report messages always carry the
// symbol form.

// MarketToSymbol converts an Upbit market code to a "BASE/QUOTE" symbol.
func MarketToSymbol(market string) (string, error) {
	quote, base, ok := strings.Cut(market, "-")
	if !ok || quote == "" || base == "" {
		return "", fmt.Errorf("invalid market code: %q", market)
	}
	return base + "/" + quote, nil
}

// SymbolToMarket converts a "BASE/QUOTE" symbol back to an Upbit market code.
func SymbolToMarket(symbol string) (string, error) {
	base, quote, ok := strings.Cut(symbol, "/")
	if !ok || base == "" || quote == "" {
		return "", fmt.Errorf("invalid symbol: %q", symbol)
	}
	return quote + "-" + base, nil
}

// QuoteCurrency returns the quote currency of an Upbit market code,
// or "" if the code is malformed.
func QuoteCurrency(market string) string {
	quote, _, ok := strings.Cut(market, "-")
	if !ok {
		return ""
	}
	return quote
}
