package tracker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes transactions from a stream of JSONL data, one
// transaction per line, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("invalid transaction on line %d: %w", line, err)
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger stream: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes every transaction of the ledger in JSONL, in
// chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions(AcceptAll) {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
