package testutil

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/gateway"
)

// FakeGateway stands in for the Razorpay client in tests. Order creation is
// in-memory; signature verification runs the real HMAC algorithm so valid and
// forged callbacks behave exactly as in production.
type FakeGateway struct {
	secret     string
	seq        atomic.Int64
	FailCreate bool
}

func NewFakeGateway(secret string) *FakeGateway {
	return &FakeGateway{secret: secret}
}

func (g *FakeGateway) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	if g.FailCreate {
		return nil, fmt.Errorf("%w: fake gateway down", domain.ErrGatewayUnavailable)
	}

	return &gateway.Order{
		ID:       fmt.Sprintf("order_test_%d", g.seq.Add(1)),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *FakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(g.Sign(orderID, paymentID)), []byte(signature))
}

// Sign produces the signature the real gateway would attach to a callback for
// this order/payment pair.
func (g *FakeGateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
