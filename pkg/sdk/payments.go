package sdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bazik-io/bazik-sdk-go/pkg/config"
	"github.com/bazik-io/bazik-sdk-go/pkg/dispatch"
	"github.com/bazik-io/bazik-sdk-go/pkg/model"
	"github.com/bazik-io/bazik-sdk-go/pkg/validate"
	"go.uber.org/zap"
)

const (
	paymentCreatePath   = "/moncash/token"
	paymentVerifyPath   = "/order/"
	paymentWithdrawPath = "/moncash/withdraw"
	paymentBalancePath  = "/balance"
)

// Payments collects MonCash payment orders from customers and withdraws
// merchant funds.
type Payments interface {
	// Create opens a payment order and returns it with the redirect URL the
	// customer must visit. Gdes must be positive and at most
	// model.MaxPaymentAmount.
	Create(ctx context.Context, req *model.PaymentRequest) (*model.Payment, error)
	// Verify fetches the current state of an order.
	Verify(ctx context.Context, orderID string) (*model.Payment, error)
	// Withdraw sends merchant funds to a MonCash wallet.
	Withdraw(ctx context.Context, req *model.PayoutRequest) (*model.Withdrawal, error)
	// GetBalance returns the merchant's payment balance.
	GetBalance(ctx context.Context) (*model.Balance, error)
	// WaitForCompletion polls Verify until the order leaves the pending
	// status or opts.Timeout elapses.
	WaitForCompletion(ctx context.Context, orderID string, opts PollOptions) (*model.Payment, error)
}

type paymentsClient struct {
	dispatcher *dispatch.Dispatcher
	cfg        *config.Config
	logger     *zap.Logger
}

func newPaymentsClient(d *dispatch.Dispatcher, cfg *config.Config, logger *zap.Logger) *paymentsClient {
	return &paymentsClient{dispatcher: d, cfg: cfg, logger: logger}
}

func (p *paymentsClient) Create(ctx context.Context, req *model.PaymentRequest) (*model.Payment, error) {
	if req == nil {
		return nil, validate.Required(validate.F("gdes", nil))
	}
	if err := validate.Amount(req.Gdes, model.MaxPaymentAmount); err != nil {
		return nil, err
	}

	var out model.Payment
	if err := p.dispatcher.Do(ctx, http.MethodPost, paymentCreatePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *paymentsClient) Verify(ctx context.Context, orderID string) (*model.Payment, error) {
	if err := validate.Required(validate.F("orderId", orderID)); err != nil {
		return nil, err
	}

	var out model.Payment
	if err := p.dispatcher.Do(ctx, http.MethodGet, paymentVerifyPath+url.PathEscape(orderID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *paymentsClient) Withdraw(ctx context.Context, req *model.PayoutRequest) (*model.Withdrawal, error) {
	if err := validatePayout(req); err != nil {
		return nil, err
	}

	var out model.Withdrawal
	if err := p.dispatcher.Do(ctx, http.MethodPost, paymentWithdrawPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *paymentsClient) GetBalance(ctx context.Context) (*model.Balance, error) {
	var out model.Balance
	if err := p.dispatcher.Do(ctx, http.MethodGet, paymentBalancePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// validatePayout checks the fields shared by withdrawals and transfers, in the
// order the gateway documents them.
func validatePayout(req *model.PayoutRequest) error {
	if req == nil {
		return validate.Required(
			validate.F("gdes", nil),
			validate.F("wallet", nil),
			validate.F("customerFirstName", nil),
			validate.F("customerLastName", nil),
		)
	}
	if err := validate.Required(
		validate.F("wallet", req.Wallet),
		validate.F("customerFirstName", req.CustomerFirstName),
		validate.F("customerLastName", req.CustomerLastName),
	); err != nil {
		return err
	}
	if err := validate.Amount(req.Gdes, 0); err != nil {
		return err
	}
	return validate.Wallet(req.Wallet)
}
