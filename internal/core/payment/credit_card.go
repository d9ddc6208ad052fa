package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/ports"
)

// MethodCreditCard is the registry key of the CreditCard strategy.
const MethodCreditCard = "creditCard"

// CreditCard simulates a card charge. It makes no external call.
type CreditCard struct {
	log zerolog.Logger
}

func NewCreditCard(log zerolog.Logger) *CreditCard {
	return &CreditCard{log: log}
}

func (c *CreditCard) Pay(ctx context.Context, amount float64) error {
	c.log.Info().
		Str("method", MethodCreditCard).
		Float64("amount", amount).
		Msg(fmt.Sprintf("Processing ₹%s via CreditCard.", FormatAmount(amount)))
	return nil
}

// NewDefaultRegistry returns a Registry holding every built-in strategy.
func NewDefaultRegistry(log zerolog.Logger) *Registry {
	return NewRegistry(map[string]ports.PaymentStrategy{
		MethodCreditCard: NewCreditCard(log),
	})
}
