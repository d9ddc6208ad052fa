package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/api/metrics"
	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// LedgerDispatcher feeds stored transactions to the payment ledger through a
// fixed set of workers. Transactions are sharded by method, so counters for
// one method are always updated by the same worker in publish order.
type LedgerDispatcher struct {
	workers []chan domain.PaymentTransaction
	ledger  ports.PaymentLedger
	log     zerolog.Logger
}

var _ ports.TransactionPublisher = (*LedgerDispatcher)(nil)

// NewLedgerDispatcher creates a LedgerDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewLedgerDispatcher(numWorkers int, ledger ports.PaymentLedger, log zerolog.Logger) *LedgerDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &LedgerDispatcher{
		workers: make([]chan domain.PaymentTransaction, numWorkers),
		ledger:  ledger,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PaymentTransaction, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *LedgerDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands tx to the worker responsible for its method. When that
// worker's buffer is full the transaction is dropped and logged; the ledger
// is a best-effort view and never blocks a payment.
func (d *LedgerDispatcher) Publish(tx domain.PaymentTransaction) {
	idx := d.shardIndex(tx.Method)
	select {
	case d.workers[idx] <- tx:
		metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.LedgerWritesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("transaction_id", tx.ID).
			Str("method", tx.Method).
			Int("worker_id", idx).
			Msg("ledger queue full, transaction not counted")
	}
}

// shardIndex maps a method deterministically to a worker index.
func (d *LedgerDispatcher) shardIndex(method string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(method))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *LedgerDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PaymentTransaction) {
	depth := metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case tx, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.ledger.Record(ctx, tx); err != nil {
				metrics.LedgerWritesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("transaction_id", tx.ID).
					Str("method", tx.Method).
					Int("worker_id", id).
					Msg("ledger update failed")
				continue
			}
			metrics.LedgerWritesTotal.WithLabelValues("ok").Inc()
		}
	}
}
