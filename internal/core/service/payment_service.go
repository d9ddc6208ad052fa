package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// PaymentService dispatches a payment to its strategy and records the
// resulting transaction. The strategy call and the insert are not atomic
// with each other.
type PaymentService struct {
	registry  ports.StrategyRegistry
	repo      ports.TransactionRepository
	publisher ports.TransactionPublisher
	ledger    ports.PaymentLedger
	log       zerolog.Logger
	now       func() time.Time
}

var _ ports.PaymentService = (*PaymentService)(nil)

// NewPaymentService wires the dispatcher. publisher may be nil.
func NewPaymentService(
	registry ports.StrategyRegistry,
	repo ports.TransactionRepository,
	publisher ports.TransactionPublisher,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		registry:  registry,
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// WithLedger enables LedgerStats.
func (s *PaymentService) WithLedger(ledger ports.PaymentLedger) *PaymentService {
	s.ledger = ledger
	return s
}

// ExecutePayment runs the strategy registered for method and appends a
// transaction. An unknown method is logged and reported as (nil, nil).
// Amounts are not validated.
func (s *PaymentService) ExecutePayment(ctx context.Context, method string, amount float64) (*domain.PaymentTransaction, error) {
	strategy, ok := s.registry.Lookup(method)
	if !ok {
		s.log.Warn().
			Err(domain.ErrUnknownPaymentMethod).
			Str("method", method).
			Float64("amount", amount).
			Msg("invalid payment method")
		return nil, nil
	}

	if err := strategy.Pay(ctx, amount); err != nil {
		return nil, fmt.Errorf("pay via %s: %w", method, err)
	}

	tx, err := s.repo.Append(ctx, &domain.PaymentTransaction{
		Method:    method,
		Amount:    amount,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("method", method).Msg("failed to save transaction")
		return nil, fmt.Errorf("save transaction: %w", err)
	}

	s.log.Info().
		Str("transaction_id", tx.ID).
		Str("method", method).
		Float64("amount", amount).
		Msg("transaction saved")

	if s.publisher != nil {
		s.publisher.Publish(*tx)
	}
	return tx, nil
}

func (s *PaymentService) ListTransactions(ctx context.Context) ([]domain.PaymentTransaction, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *PaymentService) Methods() []string {
	return s.registry.Methods()
}

// LedgerStats returns per-method counters, or domain.ErrLedgerDisabled when
// no ledger is configured.
func (s *PaymentService) LedgerStats(ctx context.Context) ([]domain.MethodStats, error) {
	if s.ledger == nil {
		return nil, domain.ErrLedgerDisabled
	}
	stats, err := s.ledger.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}
	return stats, nil
}
