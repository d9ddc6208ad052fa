package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/paydesk/payment-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = strconv.Itoa(len(r.users) + 1)
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

type stubTxRepo struct {
	mu        sync.Mutex
	txs       []domain.PaymentTransaction
	appendErr error
}

func (r *stubTxRepo) Append(_ context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return nil, r.appendErr
	}
	clone := *tx
	clone.ID = strconv.Itoa(len(r.txs) + 1)
	r.txs = append(r.txs, clone)
	return &clone, nil
}

func (r *stubTxRepo) List(_ context.Context) ([]domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PaymentTransaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

func (r *stubTxRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.txs)
}

// ---------------------------------------------------------------------------
// Strategy and publisher stubs
// ---------------------------------------------------------------------------

type stubStrategy struct {
	mu    sync.Mutex
	calls []float64
	err   error
}

func (s *stubStrategy) Pay(_ context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, amount)
	return s.err
}

type stubPublisher struct {
	mu        sync.Mutex
	published []domain.PaymentTransaction
}

func (p *stubPublisher) Publish(tx domain.PaymentTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, tx)
}

var errBoom = errors.New("boom")

type stubLedger struct {
	stats []domain.MethodStats
	err   error
}

func (l *stubLedger) Record(context.Context, domain.PaymentTransaction) error { return l.err }

func (l *stubLedger) Stats(context.Context) ([]domain.MethodStats, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.stats, nil
}
