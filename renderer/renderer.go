// Package renderer turns portfolio data into markdown for terminal display.
package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/davret/tracker"
	md "github.com/nao1215/markdown"
)

// HoldingMarkdown renders a user's priced portfolio as a markdown table.
func HoldingMarkdown(user string, rows []tracker.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio for %s", user))

	if len(rows) == 0 {
		doc.PlainText("No open positions.")
		doc.Build()
		return buf.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Class", "Quantity", "Avg Cost", "Price", "Market Value"},
	}
	var total float64
	for _, row := range rows {
		total += row.MarketValue
		table.Rows = append(table.Rows, []string{
			row.Symbol,
			string(row.Class),
			fmt.Sprintf("%g", row.Quantity),
			fmt.Sprintf("%.4f", row.CostBasis),
			fmt.Sprintf("%.4f", row.Price),
			fmt.Sprintf("%.2f", row.MarketValue),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "", "", "", md.Bold(fmt.Sprintf("%.2f", total)),
	})
	doc.Table(table)
	doc.Build()

	return buf.String()
}

// TransactionsMarkdown renders a transaction list, oldest first.
func TransactionsMarkdown(txs []tracker.Transaction) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Symbol | Quantity | Price |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			tx.Time.Format("2006-01-02"),
			tx.Symbol,
			tx.Quantity,
			tx.Price,
		)
	}
	return b.String()
}

// TransactionOneLiner renders a single transaction the way a confirmation
// message reads.
func TransactionOneLiner(tx tracker.Transaction) string {
	if tx.IsAcquisition() {
		return fmt.Sprintf("Bought %s of %s at %s", tx.Quantity, tx.Symbol, tx.Price)
	}
	return fmt.Sprintf("Sold %s of %s at %s", tx.Quantity.Neg(), tx.Symbol, tx.Price)
}

// RulesMarkdown renders alert rules grouped by symbol.
func RulesMarkdown(rules []tracker.AlertRule) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Alert Rules\n\n")
	if len(rules) == 0 {
		fmt.Fprintln(&b, "No alert rules defined.")
		return b.String()
	}

	sorted := make([]tracker.AlertRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })

	fmt.Fprintln(&b, "| Symbol | User | Upper | Lower | Active |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|:---|")
	for _, r := range sorted {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %v |\n",
			r.Symbol, r.User, threshold(r.Upper), threshold(r.Lower), r.Active)
	}
	return b.String()
}

func threshold(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
