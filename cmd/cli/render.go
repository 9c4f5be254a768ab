package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/amirasaad/fxledger/pkg/money"
	ledgerweb "github.com/amirasaad/fxledger/webapi/ledger"
	"github.com/fatih/color"
)

var (
	header  = color.New(color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	muted   = color.New(color.Faint)
)

// display formats amount text of the given currency with its symbol.
// Text that does not parse is returned as is.
func display(amount, currency string) string {
	code, err := money.ParseCode(currency)
	if err != nil {
		return amount + " " + currency
	}
	m, err := money.Parse(amount, code)
	if err != nil {
		return amount + " " + currency
	}
	return m.Display()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderAccounts(w io.Writer, accounts []ledgerweb.AccountDTO) error {
	tw := newTable(w)
	header.Fprintln(tw, "ID\tNAME\tCURRENCY\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Currency, display(a.Balance, a.Currency))
	}
	return tw.Flush()
}

func renderTransactions(w io.Writer, txs []ledgerweb.TransactionDTO) error {
	if len(txs) == 0 {
		muted.Fprintln(w, "no transactions")
		return nil
	}
	tw := newTable(w)
	header.Fprintln(tw, "TIME\tFROM\tTO\tAMOUNT\tCREDITED\tRATE\tNOTE")
	for _, tx := range txs {
		credited, rate := display(tx.Amount, tx.Currency), "-"
		if tx.ConvertedAmount != nil && tx.ConvertedCurrency != nil {
			credited = display(*tx.ConvertedAmount, *tx.ConvertedCurrency)
		}
		if tx.Rate != nil {
			rate = *tx.Rate
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortTime(tx.CreatedAt),
			tx.FromAccountName,
			tx.ToAccountName,
			display(tx.Amount, tx.Currency),
			credited,
			rate,
			tx.Note,
		)
	}
	return tw.Flush()
}

func renderTransfer(w io.Writer, tx *ledgerweb.TransactionDTO) {
	success.Fprintf(w, "Transfer %s completed\n", tx.ID)
	fmt.Fprintf(w, "  debited  %s from %s (%s)\n", display(tx.Amount, tx.Currency), tx.FromAccountName, tx.FromAccountID)
	if tx.ConvertedAmount != nil && tx.ConvertedCurrency != nil && tx.Rate != nil {
		fmt.Fprintf(w, "  credited %s to %s (%s) at %s\n",
			display(*tx.ConvertedAmount, *tx.ConvertedCurrency), tx.ToAccountName, tx.ToAccountID, *tx.Rate)
		return
	}
	fmt.Fprintf(w, "  credited %s to %s (%s)\n", display(tx.Amount, tx.Currency), tx.ToAccountName, tx.ToAccountID)
}

func renderTotals(w io.Writer, totals []ledgerweb.TotalDTO) error {
	tw := newTable(w)
	header.Fprintln(tw, "CURRENCY\tTOTAL")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%s\n", t.Currency, display(t.Amount, t.Currency))
	}
	return tw.Flush()
}

func renderRates(w io.Writer, rates []ledgerweb.RateDTO) error {
	tw := newTable(w)
	header.Fprintln(tw, "FROM\tTO\tRATE")
	for _, r := range rates {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.From, r.To, r.Rate)
	}
	return tw.Flush()
}

func shortTime(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Local().Format(time.DateTime)
}
