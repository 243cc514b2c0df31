package service

import (
	"context"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	apperrors "eduhub/internal/errors"
)

// CardDetails carries the fields of a payment card submission.
type CardDetails struct {
	Number         string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	CardholderName string
}

// PaymentGateway authorizes a card charge and returns a transaction id.
// The production implementation would sit in front of a real acquirer;
// the shipped one simulates gateway behavior for test card numbers.
type PaymentGateway interface {
	Authorize(ctx context.Context, card CardDetails, amount decimal.Decimal) (transactionID string, err error)
}

// Test card numbers the dummy gateway always declines.
const (
	testCardInsufficientFunds = "4000000000000002"
	testCardInvalid           = "4000000000000119"
)

type dummyGateway struct{}

// NewDummyGateway creates the simulated payment gateway.
func NewDummyGateway() PaymentGateway {
	return dummyGateway{}
}

// Authorize applies the simulated decline rules and fabricates a
// transaction id on success.
func (dummyGateway) Authorize(_ context.Context, card CardDetails, _ decimal.Decimal) (string, error) {
	switch {
	case card.Number == testCardInsufficientFunds:
		return "", &apperrors.PaymentError{Reason: "Payment declined - Insufficient funds"}
	case card.Number == testCardInvalid:
		return "", &apperrors.PaymentError{Reason: "Payment declined - Invalid card"}
	case len(card.Number) < 13 || len(card.Number) > 19:
		return "", &apperrors.PaymentError{Reason: "Invalid card number length"}
	case len(card.CVV) != 3:
		return "", &apperrors.PaymentError{Reason: "Invalid CVV"}
	}
	return newTransactionID(), nil
}

const txnCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newTransactionID() string {
	id := make([]byte, 10)
	for i := range id {
		id[i] = txnCharset[rand.IntN(len(txnCharset))]
	}
	return "TXN" + string(id)
}
