package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

type TransactionRepository struct {
	db *sql.DB
}

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Append(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	ts := tx.Timestamp.UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_transactions (method, amount, timestamp) VALUES (?, ?, ?)`,
		tx.Method, tx.Amount, ts.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("transaction last insert id: %w", err)
	}

	stored := *tx
	stored.ID = strconv.FormatInt(id, 10)
	stored.Timestamp = ts
	return &stored, nil
}

// List orders by the autoincrement id, i.e. insertion order.
func (r *TransactionRepository) List(ctx context.Context) ([]domain.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, method, amount, timestamp FROM payment_transactions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PaymentTransaction, 0)
	for rows.Next() {
		var (
			id int64
			ts int64
			tx domain.PaymentTransaction
		)
		if err := rows.Scan(&id, &tx.Method, &tx.Amount, &ts); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.ID = strconv.FormatInt(id, 10)
		tx.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
