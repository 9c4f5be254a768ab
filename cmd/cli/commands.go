package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	ledgerweb "github.com/amirasaad/fxledger/webapi/ledger"
	"github.com/google/subcommands"
)

// env carries what every command needs: the server address and where to write.
type env struct {
	addr   *string
	out    io.Writer
	errOut io.Writer
}

func (e *env) client() *client { return newClient(*e.addr) }

func (e *env) fail(err error) subcommands.ExitStatus {
	failure.Fprintf(e.errOut, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// register adds the ledger commands to c.
func register(c *subcommands.Commander, e *env) {
	c.Register(&accountsCmd{env: e}, "ledger")
	c.Register(&historyCmd{env: e}, "ledger")
	c.Register(&transferCmd{env: e}, "ledger")
	c.Register(&totalsCmd{env: e}, "ledger")
	c.Register(&ratesCmd{env: e}, "ledger")
}

type accountsCmd struct{ env *env }

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "lists accounts with their balances" }
func (*accountsCmd) Usage() string {
	return `accounts

  Lists every account with its currency and current balance.
`
}
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	accounts, err := c.env.client().accounts()
	if err != nil {
		return c.env.fail(err)
	}
	if err := renderAccounts(c.env.out, accounts); err != nil {
		return c.env.fail(err)
	}
	return subcommands.ExitSuccess
}

type historyCmd struct {
	env      *env
	currency string
	reverse  bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "lists completed transfers" }
func (*historyCmd) Usage() string {
	return `history [-currency <code>] [-reverse]

  Lists completed transfers, oldest first.

Usage Examples:
# Only transfers sent from USD accounts, newest first.
$ fxledger-cli history -currency USD -reverse

`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Only show transfers whose source currency is this code (KES, USD, NGN)")
	f.BoolVar(&c.reverse, "reverse", false, "Show newest transfers first")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.env.client().transactions(c.currency, c.reverse)
	if err != nil {
		return c.env.fail(err)
	}
	if err := renderTransactions(c.env.out, txs); err != nil {
		return c.env.fail(err)
	}
	return subcommands.ExitSuccess
}

type transferCmd struct {
	env    *env
	from   string
	to     string
	amount string
	note   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "moves money between two accounts" }
func (*transferCmd) Usage() string {
	return `transfer -from <id> -to <id> -amount <decimal> [-note <text>]

  Debits the amount from the source account in its currency and credits the
  destination, converting at the configured rate when currencies differ.

Usage Examples:
$ fxledger-cli transfer -from 5 -to 1 -amount 250.00 -note "school fees"

`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account id")
	f.StringVar(&c.to, "to", "", "Destination account id")
	f.StringVar(&c.amount, "amount", "", "Amount in the source account currency")
	f.StringVar(&c.note, "note", "", "Optional note stored with the transfer")
}

func (c *transferCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.amount == "" {
		fmt.Fprint(c.env.errOut, c.Usage())
		return subcommands.ExitUsageError
	}
	tx, err := c.env.client().transfer(ledgerweb.TransferRequest{
		FromAccountID: c.from,
		ToAccountID:   c.to,
		Amount:        c.amount,
		Note:          c.note,
	})
	if err != nil {
		return c.env.fail(err)
	}
	renderTransfer(c.env.out, tx)
	return subcommands.ExitSuccess
}

type totalsCmd struct{ env *env }

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "shows the total balance held per currency" }
func (*totalsCmd) Usage() string {
	return `totals

  Shows the sum of all balances for each supported currency.
`
}
func (*totalsCmd) SetFlags(*flag.FlagSet) {}

func (c *totalsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	totals, err := c.env.client().totals()
	if err != nil {
		return c.env.fail(err)
	}
	if err := renderTotals(c.env.out, totals); err != nil {
		return c.env.fail(err)
	}
	return subcommands.ExitSuccess
}

type ratesCmd struct{ env *env }

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "shows the exchange rate table" }
func (*ratesCmd) Usage() string {
	return `rates

  Shows the rate used for each ordered currency pair.
`
}
func (*ratesCmd) SetFlags(*flag.FlagSet) {}

func (c *ratesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rates, err := c.env.client().rates()
	if err != nil {
		return c.env.fail(err)
	}
	if err := renderRates(c.env.out, rates); err != nil {
		return c.env.fail(err)
	}
	return subcommands.ExitSuccess
}
