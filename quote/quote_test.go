package quote

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYahoo_Price(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/AAPL" {
			t.Errorf("path = %q, want /AAPL", r.URL.Path)
		}
		w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":187.44}}]}}`))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL)
	got, err := y.Price(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Price() unexpected error = %v", err)
	}
	if math.Abs(got-187.44) > 1e-9 {
		t.Errorf("Price() = %v, want 187.44", got)
	}
}

func TestYahoo_Price_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[]}}`))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL)
	if _, err := y.Price(context.Background(), "NOPE"); err == nil {
		t.Error("Price() expected an error for an empty chart result")
	}
}

func TestCoinGecko_Price(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids query = %q, want bitcoin", got)
		}
		w.Write([]byte(`{"bitcoin":{"usd":30000.5}}`))
	}))
	defer srv.Close()

	c := NewCoinGecko(srv.URL)
	got, err := c.Price(context.Background(), "Bitcoin")
	if err != nil {
		t.Fatalf("Price() unexpected error = %v", err)
	}
	if math.Abs(got-30000.5) > 1e-9 {
		t.Errorf("Price() = %v, want 30000.5", got)
	}
}

func TestCoinGecko_Price_UnknownAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewCoinGecko(srv.URL)
	if _, err := c.Price(context.Background(), "nope"); err == nil {
		t.Error("Price() expected an error for an unknown asset")
	}
}

func TestCoinGecko_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"ethereum","symbol":"eth","name":"Ethereum"}]`))
	}))
	defer srv.Close()

	c := NewCoinGecko(srv.URL)
	id, err := c.Resolve(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if id != "ethereum" {
		t.Errorf("Resolve() = %q, want ethereum", id)
	}

	if _, err := c.Resolve(context.Background(), "doesnotexist"); err == nil {
		t.Error("Resolve() expected an error for an unknown ticker")
	}
}
