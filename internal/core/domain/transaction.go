package domain

import "time"

// PaymentTransaction records one successful strategy invocation. It is
// append-only: never updated or deleted once stored.
//
// The initiating user is not recorded.
type PaymentTransaction struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// MethodStats aggregates the transactions recorded for one payment method.
type MethodStats struct {
	Method string  `json:"method"`
	Count  int64   `json:"count"`
	Total  float64 `json:"total"`
}
