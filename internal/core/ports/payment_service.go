package ports

import (
	"context"

	"github.com/paydesk/payment-service/internal/core/domain"
)

// PaymentStrategy performs the payment action for one method.
type PaymentStrategy interface {
	Pay(ctx context.Context, amount float64) error
}

// StrategyRegistry maps method identifiers to strategies.
type StrategyRegistry interface {
	Lookup(method string) (PaymentStrategy, bool)
	Methods() []string
}

// TransactionRepository appends and lists payment transactions.
type TransactionRepository interface {
	// Append stores tx and returns it with the storage-assigned ID.
	Append(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
	// List returns every stored transaction in insertion order.
	List(ctx context.Context) ([]domain.PaymentTransaction, error)
}

// TransactionPublisher receives transactions after they were stored.
type TransactionPublisher interface {
	Publish(tx domain.PaymentTransaction)
}

// PaymentLedger keeps running per-method totals.
type PaymentLedger interface {
	Record(ctx context.Context, tx domain.PaymentTransaction) error
	Stats(ctx context.Context) ([]domain.MethodStats, error)
}

// PaymentService executes payments and exposes the transaction history.
type PaymentService interface {
	// ExecutePayment returns (nil, nil) when method is not registered.
	ExecutePayment(ctx context.Context, method string, amount float64) (*domain.PaymentTransaction, error)
	ListTransactions(ctx context.Context) ([]domain.PaymentTransaction, error)
	Methods() []string
	LedgerStats(ctx context.Context) ([]domain.MethodStats, error)
}
