package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/domain"
)

type recordingLedger struct {
	mu       sync.Mutex
	recorded []domain.PaymentTransaction
	err      error
}

func (l *recordingLedger) Record(_ context.Context, tx domain.PaymentTransaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.recorded = append(l.recorded, tx)
	return nil
}

func (l *recordingLedger) Stats(context.Context) ([]domain.MethodStats, error) { return nil, nil }

func (l *recordingLedger) snapshot() []domain.PaymentTransaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.PaymentTransaction, len(l.recorded))
	copy(out, l.recorded)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewLedgerDispatcher(8, &recordingLedger{}, zerolog.Nop())
	for _, m := range []string{"creditCard", "upi", "paypal", ""} {
		first := d.shardIndex(m)
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range for %q", first, m)
		}
		for range 10 {
			if got := d.shardIndex(m); got != first {
				t.Fatalf("shard for %q changed: %d → %d", m, first, got)
			}
		}
	}
}

func TestNewLedgerDispatcher_DefaultWorkers(t *testing.T) {
	d := NewLedgerDispatcher(0, &recordingLedger{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestPublish_PreservesPerMethodOrder(t *testing.T) {
	ledger := &recordingLedger{}
	d := NewLedgerDispatcher(4, ledger, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 50
	for i := range n {
		d.Publish(domain.PaymentTransaction{Method: "creditCard", Amount: float64(i)})
	}

	waitFor(t, func() bool { return len(ledger.snapshot()) == n })

	for i, tx := range ledger.snapshot() {
		if tx.Amount != float64(i) {
			t.Fatalf("position %d: amount %v, order not preserved", i, tx.Amount)
		}
	}
}

func TestPublish_LedgerErrorDoesNotStopWorker(t *testing.T) {
	ledger := &recordingLedger{err: errors.New("redis down")}
	d := NewLedgerDispatcher(1, ledger, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(domain.PaymentTransaction{Method: "creditCard", Amount: 1})

	ledger.mu.Lock()
	ledger.err = nil
	ledger.mu.Unlock()

	d.Publish(domain.PaymentTransaction{Method: "creditCard", Amount: 2})
	waitFor(t, func() bool {
		for _, tx := range ledger.snapshot() {
			if tx.Amount == 2 {
				return true
			}
		}
		return false
	})
}

func TestPublish_DropsWhenBufferFull(t *testing.T) {
	d := NewLedgerDispatcher(1, &recordingLedger{}, zerolog.Nop())
	// workers not started: the buffer fills and further publishes must not block
	done := make(chan struct{})
	go func() {
		for range channelBuffer + 10 {
			d.Publish(domain.PaymentTransaction{Method: "creditCard", Amount: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}
