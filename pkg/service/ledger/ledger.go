// Package ledger executes transfers between the ledger's accounts and answers
// the read-side queries: accounts, transaction history and per-currency totals.
//
// Every transfer runs inside a single unit of work, so validation, balance
// updates and the transaction record are applied together or not at all.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/domain/events"
	"github.com/amirasaad/fxledger/pkg/eventbus"
	"github.com/amirasaad/fxledger/pkg/metrics"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/amirasaad/fxledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest is the raw input of a transfer. Amount is decimal text in
// the source account's currency.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        string
	Note          string
}

// Service provides the ledger operations.
type Service struct {
	uow           repository.UnitOfWork
	converter     currency.Converter
	bus           eventbus.Bus
	metrics       metrics.Collector
	logger        *slog.Logger
	now           func() time.Time
	newID         func() (uuid.UUID, error)
	runningTotals bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the source of transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the source of transaction ids.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(s *Service) { s.newID = newID }
}

// WithRunningTotals makes TotalsByCurrency read the totals the store
// maintains alongside every balance update instead of summing all accounts.
func WithRunningTotals() Option {
	return func(s *Service) { s.runningTotals = true }
}

// NewService creates a new Service with the provided dependencies.
// Only Uow is required: the rate table defaults to the built-in rates, and a
// missing bus, collector or logger is replaced by a no-op or the default.
func NewService(deps config.Deps, opts ...Option) *Service {
	s := &Service{
		uow:     deps.Uow,
		bus:     deps.EventBus,
		metrics: deps.Metrics,
		logger:  deps.Logger,
		now:     time.Now,
		newID:   uuid.NewV7,
	}
	if deps.RateTable != nil {
		s.converter = deps.RateTable
	} else {
		s.converter = currency.DefaultRateTable()
	}
	if s.metrics == nil {
		s.metrics = metrics.NoOpCollector{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "ledger")
	if deps.Config != nil && deps.Config.Ledger != nil && deps.Config.Ledger.RunningTotals {
		s.runningTotals = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExecuteTransfer validates and applies a transfer.
//
// On success the source is debited by the requested amount, the destination
// is credited by the same amount (or its converted value when the currencies
// differ) and one transaction is appended to the log. On any error nothing
// changes. Validation failures are returned as *account.ValidationError;
// a missing exchange rate is returned wrapping currency.ErrMissingRate.
func (s *Service) ExecuteTransfer(ctx context.Context, req TransferRequest) (*account.Transaction, error) {
	start := time.Now()
	logger := s.logger.With("from", req.FromAccountID, "to", req.ToAccountID, "amount", req.Amount)
	logger.Debug("ExecuteTransfer started")

	var (
		tx       *account.Transaction
		from, to money.Code
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		lookup, err := snapshot(accounts)
		if err != nil {
			return err
		}
		transfer, err := account.ValidateTransfer(lookup, req.FromAccountID, req.ToAccountID, req.Amount)
		if err != nil {
			return err
		}
		from, to = transfer.From.Currency(), transfer.To.Currency()

		conversion, err := s.converter.Convert(transfer.Amount, to)
		if err != nil {
			return err
		}
		credited := transfer.Amount
		if conversion != nil {
			credited = conversion.Amount
		}

		source, dest := transfer.From, transfer.To
		if err := source.Debit(transfer.Amount); err != nil {
			return err
		}
		if err := dest.Credit(credited); err != nil {
			return err
		}

		id, err := s.newID()
		if err != nil {
			return err
		}
		createdAt, err := s.timestamp(transactions)
		if err != nil {
			return err
		}
		record := &account.Transaction{
			ID:              id,
			FromAccountID:   source.ID,
			ToAccountID:     dest.ID,
			FromAccountName: source.Name,
			ToAccountName:   dest.Name,
			Amount:          transfer.Amount,
			Note:            req.Note,
			CreatedAt:       createdAt,
		}
		if conversion != nil {
			converted, rate := conversion.Amount, conversion.Rate
			record.ConvertedAmount = &converted
			record.Rate = &rate
		}

		if err := accounts.Update(&source); err != nil {
			return err
		}
		if err := accounts.Update(&dest); err != nil {
			return err
		}
		if err := transactions.Create(record); err != nil {
			return err
		}
		tx = record
		return nil
	})

	elapsed := time.Since(start)
	if err != nil {
		s.reportFailure(ctx, logger, req, from, to, elapsed, err)
		return nil, err
	}

	s.metrics.RecordTransfer(from, to, metrics.OutcomeCompleted, elapsed)
	logger.Info("Transfer completed",
		"transaction_id", tx.ID,
		"debited", tx.Amount.String(),
		"credited", tx.Credited().String(),
	)
	s.emit(ctx, events.TransferCompleted{Transaction: *tx})
	return tx, nil
}

// timestamp returns the current time, clamped so it never precedes the
// latest recorded transaction.
func (s *Service) timestamp(transactions repository.TransactionRepository) (time.Time, error) {
	now := s.now().UTC()
	latest, err := transactions.Latest()
	if err != nil {
		return time.Time{}, err
	}
	if latest != nil && now.Before(latest.CreatedAt) {
		return latest.CreatedAt, nil
	}
	return now, nil
}

func (s *Service) reportFailure(
	ctx context.Context,
	logger *slog.Logger,
	req TransferRequest,
	from, to money.Code,
	elapsed time.Duration,
	err error,
) {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.RecordTransfer(from, to, metrics.OutcomeRejected, elapsed)
		logger.Info("Transfer rejected", "code", verr.Code(), "field", verr.Field, "reason", err)
		s.emit(ctx, events.TransferRejected{
			FromAccountID: req.FromAccountID,
			ToAccountID:   req.ToAccountID,
			Code:          verr.Code(),
			Reason:        err.Error(),
		})
		return
	case errors.Is(err, currency.ErrMissingRate):
		s.metrics.RecordMissingRate(from, to)
		logger.Error("Transfer failed: exchange rate table is incomplete",
			"pair", currency.Pair{From: from, To: to}.String(), "error", err)
	default:
		logger.Error("Transfer failed", "error", err)
	}
	s.metrics.RecordTransfer(from, to, metrics.OutcomeFailed, elapsed)
	s.emit(ctx, events.TransferFailed{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Reason:        err.Error(),
	})
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit event", "type", event.Type(), "error", err)
	}
}

func snapshot(accounts repository.AccountRepository) (account.Lookup, error) {
	list, err := accounts.List()
	if err != nil {
		return nil, err
	}
	values := make([]account.Account, 0, len(list))
	for _, a := range list {
		values = append(values, *a)
	}
	return account.Index(values), nil
}

// ListAccounts returns every account with its current balance, in seed order.
func (s *Service) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.List()
}

// ListTransactions returns the transaction log in creation order.
func (s *Service) ListTransactions(ctx context.Context) ([]*account.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.List()
}

// TotalsByCurrency returns the sum of all balances per currency. Every
// supported currency is present, with zero when no account holds it.
func (s *Service) TotalsByCurrency(ctx context.Context) (map[money.Code]money.Money, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}

	sums := make(map[money.Code]decimal.Decimal, money.NumCodes)
	if reader, ok := repo.(repository.TotalsReader); ok && s.runningTotals {
		if sums, err = reader.Totals(); err != nil {
			return nil, err
		}
	} else {
		accounts, err := repo.List()
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			sums[a.Currency()] = sums[a.Currency()].Add(a.Balance.Amount())
		}
	}

	totals := make(map[money.Code]money.Money, money.NumCodes)
	for _, code := range money.Codes() {
		totals[code] = money.Must(sums[code], code)
	}
	return totals, nil
}
