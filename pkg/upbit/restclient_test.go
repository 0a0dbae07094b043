package upbit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// go test -v --run TestGetMarkets
func TestGetMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/market/all" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"market":"KRW-BTC","korean_name":"비트코인","english_name":"Bitcoin"},
			{"market":"KRW-ETH","korean_name":"이더리움","english_name":"Ethereum"},
			{"market":"BTC-ETH","korean_name":"이더리움","english_name":"Ethereum"}
		]`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	markets, err := client.GetMarkets(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markets) != 3 {
		t.Fatalf("expected 3 markets, got %d", len(markets))
	}
	if markets[0].Market != "KRW-BTC" || markets[0].EnglishName != "Bitcoin" {
		t.Errorf("unexpected first market: %+v", markets[0])
	}
}

// go test -v --run TestGetTickersBatching
func TestGetTickersBatching(t *testing.T) {
	var requests []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		codes := strings.Split(r.URL.Query().Get("markets"), ",")
		requests = append(requests, len(codes))

		w.Header().Set("Content-Type", "application/json")
		var parts []string
		for _, code := range codes {
			parts = append(parts, `{"market":"`+code+`","trade_price":100,"signed_change_rate":0.052}`)
		}
		w.Write([]byte("[" + strings.Join(parts, ",") + "]"))
	}))
	defer srv.Close()

	// 250 markets must be fetched as 100 + 100 + 50
	var markets []string
	for i := 0; i < 250; i++ {
		markets = append(markets, "KRW-C"+string(rune('A'+i%26))+string(rune('A'+i/26)))
	}

	client := NewRESTClient(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tickers, err := client.GetTickers(ctx, markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tickers) != 250 {
		t.Fatalf("expected 250 tickers, got %d", len(tickers))
	}
	if len(requests) != 3 || requests[0] != 100 || requests[1] != 100 || requests[2] != 50 {
		t.Errorf("unexpected batch sizes: %v", requests)
	}

	pct, ok := tickers[0].ChangePercent()
	if !ok {
		t.Fatal("expected change percent to be present")
	}
	if pct.String() != "5.2" {
		t.Errorf("expected 5.2, got %s", pct)
	}
}

// go test -v --run TestGetTickersAPIError
func TestGetTickersAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"name":404,"message":"Code not found"}}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	_, err := client.GetTickers(context.Background(), []string{"KRW-NOPE"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Code not found") {
		t.Errorf("expected upbit error message, got: %v", err)
	}
}

// go test -v --run TestChangePercentAbsent
func TestChangePercentAbsent(t *testing.T) {
	var tick Ticker
	if _, ok := tick.ChangePercent(); ok {
		t.Error("expected absent change rate to report ok=false")
	}
}
