package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var ErrDisabled = errors.New("payments disabled")

type LinkRequest struct {
	Reference  string
	Title      string
	Amount     decimal.Decimal
	PayerEmail string
}

// LinkProvider creates a hosted checkout link for an invoice.
type LinkProvider interface {
	PaymentLink(ctx context.Context, req LinkRequest) (string, error)
}

type Noop struct{}

func (Noop) PaymentLink(context.Context, LinkRequest) (string, error) {
	return "", ErrDisabled
}

type MercadoPago struct {
	client   preference.Client
	currency string
}

func NewMercadoPago(accessToken, currency string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		client:   preference.NewClient(cfg),
		currency: currency,
	}, nil
}

func (m *MercadoPago) PaymentLink(ctx context.Context, req LinkRequest) (string, error) {
	if !req.Amount.IsPositive() {
		return "", fmt.Errorf("payment link for %s: amount must be positive", req.Reference)
	}

	pref := preference.Request{
		ExternalReference: req.Reference,
		Items: []preference.ItemRequest{
			{
				ID:         req.Reference,
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  req.Amount.InexactFloat64(),
				CurrencyID: m.currency,
			},
		},
	}
	if req.PayerEmail != "" {
		pref.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	resp, err := m.client.Create(ctx, pref)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference %s: %w", req.Reference, err)
	}
	return resp.InitPoint, nil
}
