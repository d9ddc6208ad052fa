package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// Key layout:
//
//	payments:methods          set of every method seen
//	payments:count:<method>   number of transactions
//	payments:amount:<method>  running amount total
const (
	methodsKey   = "payments:methods"
	countPrefix  = "payments:count:"
	amountPrefix = "payments:amount:"
)

// Ledger keeps per-method payment totals in Redis.
type Ledger struct {
	client *redis.Client
}

var _ ports.PaymentLedger = (*Ledger)(nil)

// NewLedger creates a Ledger wrapping the given Redis client.
func NewLedger(client *redis.Client) *Ledger {
	return &Ledger{client: client}
}

// Record adds tx to its method's counters in a single MULTI/EXEC.
func (l *Ledger) Record(ctx context.Context, tx domain.PaymentTransaction) error {
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, methodsKey, tx.Method)
		pipe.Incr(ctx, countPrefix+tx.Method)
		pipe.IncrByFloat(ctx, amountPrefix+tx.Method, tx.Amount)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ledger record: %w", err)
	}
	return nil
}

// Stats returns the totals for every recorded method, sorted by method.
func (l *Ledger) Stats(ctx context.Context) ([]domain.MethodStats, error) {
	methods, err := l.client.SMembers(ctx, methodsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("ledger methods: %w", err)
	}
	sort.Strings(methods)

	out := make([]domain.MethodStats, 0, len(methods))
	for _, m := range methods {
		count, err := l.readInt(ctx, countPrefix+m)
		if err != nil {
			return nil, err
		}
		total, err := l.readFloat(ctx, amountPrefix+m)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.MethodStats{Method: m, Count: count, Total: total})
	}
	return out, nil
}

func (l *Ledger) readInt(ctx context.Context, key string) (int64, error) {
	v, err := l.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ledger read %s: %w", key, err)
	}
	return v, nil
}

func (l *Ledger) readFloat(ctx context.Context, key string) (float64, error) {
	raw, err := l.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ledger read %s: %w", key, err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ledger parse %s: %w", key, err)
	}
	return v, nil
}
