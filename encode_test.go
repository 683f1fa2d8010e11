package tracker

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeLedger(t *testing.T) {
	ledger := NewLedger(
		NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
		NewSell("demo", "AAPL", Q(4), M(150.0, "USD"), day(2)),
		NewBuy("demo", "USD_EUR", Q(1000), M(0.92, "EUR"), day(3)),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() unexpected error = %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("EncodeLedger() wrote %d lines, want 3", got)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error = %v", err)
	}
	if decoded.Len() != 3 {
		t.Fatalf("DecodeLedger() decoded %d transactions, want 3", decoded.Len())
	}
	if got := decoded.NetQuantity("demo", "AAPL"); got != 6 {
		t.Errorf("decoded NetQuantity(AAPL) = %v, want 6", got)
	}
	if got := decoded.AverageCostBasis("demo", "AAPL"); got != 120 {
		t.Errorf("decoded AverageCostBasis(AAPL) = %v, want 120", got)
	}

	var again Transaction
	for _, tx := range decoded.Transactions(ByPosition("demo", "USD_EUR")) {
		again = tx
	}
	if again.Price.Currency() != "EUR" {
		t.Errorf("decoded currency = %q, want EUR", again.Price.Currency())
	}
}

func TestDecodeLedger_RejectsGarbage(t *testing.T) {
	if _, err := DecodeLedger(strings.NewReader("{}\nnot json\n")); err == nil {
		t.Error("DecodeLedger() expected an error on a malformed line")
	}
}

func TestDecodeLedger_SkipsBlankLines(t *testing.T) {
	in := `{"user":"demo","symbol":"AAPL","quantity":10,"price":120,"currency":"USD","time":"2025-01-01T10:00:00Z"}

`
	ledger, err := DecodeLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error = %v", err)
	}
	if ledger.Len() != 1 {
		t.Errorf("DecodeLedger() decoded %d transactions, want 1", ledger.Len())
	}
}
