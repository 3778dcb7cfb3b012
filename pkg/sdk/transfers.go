package sdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bazik-io/bazik-sdk-go/pkg/dispatch"
	"github.com/bazik-io/bazik-sdk-go/pkg/model"
	"github.com/bazik-io/bazik-sdk-go/pkg/validate"
)

const (
	customerStatusPath  = "/moncash/customers/status"
	monCashTransferPath = "/moncash/transfers"
	natCashTransferPath = "/natcash/transfers"
	transferStatusPath  = "/transfers/"
	transferQuotePath   = "/transfers/quote"
)

// Transfers sends money to MonCash and NatCash wallets.
type Transfers interface {
	// CheckCustomer reports whether wallet belongs to a registered MonCash
	// customer and its KYC status.
	CheckCustomer(ctx context.Context, wallet string) (*model.CustomerStatus, error)
	// MonCash transfers to a MonCash wallet.
	MonCash(ctx context.Context, req *model.PayoutRequest) (*model.Transfer, error)
	// NatCash transfers to a NatCash wallet.
	NatCash(ctx context.Context, req *model.PayoutRequest) (*model.Transfer, error)
	// GetStatus fetches a transfer by transaction ID.
	GetStatus(ctx context.Context, transactionID string) (*model.Transfer, error)
	// GetQuote returns the fee breakdown for sending amount through provider
	// (validate.ProviderMonCash or validate.ProviderNatCash).
	GetQuote(ctx context.Context, amount float64, provider string) (*model.Quote, error)
}

type transfersClient struct {
	dispatcher *dispatch.Dispatcher
}

func newTransfersClient(d *dispatch.Dispatcher) *transfersClient {
	return &transfersClient{dispatcher: d}
}

func (t *transfersClient) CheckCustomer(ctx context.Context, wallet string) (*model.CustomerStatus, error) {
	if err := validate.Required(validate.F("wallet", wallet)); err != nil {
		return nil, err
	}
	if err := validate.Wallet(wallet); err != nil {
		return nil, err
	}

	var out model.CustomerStatus
	body := &model.CustomerStatusRequest{Wallet: wallet}
	if err := t.dispatcher.Do(ctx, http.MethodPost, customerStatusPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *transfersClient) MonCash(ctx context.Context, req *model.PayoutRequest) (*model.Transfer, error) {
	return t.send(ctx, monCashTransferPath, req)
}

func (t *transfersClient) NatCash(ctx context.Context, req *model.PayoutRequest) (*model.Transfer, error) {
	return t.send(ctx, natCashTransferPath, req)
}

func (t *transfersClient) send(ctx context.Context, path string, req *model.PayoutRequest) (*model.Transfer, error) {
	if err := validatePayout(req); err != nil {
		return nil, err
	}

	var out model.Transfer
	if err := t.dispatcher.Do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *transfersClient) GetStatus(ctx context.Context, transactionID string) (*model.Transfer, error) {
	if err := validate.Required(validate.F("transactionId", transactionID)); err != nil {
		return nil, err
	}

	var out model.Transfer
	if err := t.dispatcher.Do(ctx, http.MethodGet, transferStatusPath+url.PathEscape(transactionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *transfersClient) GetQuote(ctx context.Context, amount float64, provider string) (*model.Quote, error) {
	if err := validate.Amount(amount, 0); err != nil {
		return nil, err
	}
	if err := validate.Provider(provider); err != nil {
		return nil, err
	}

	var out model.Quote
	body := &model.QuoteRequest{Amount: amount, Provider: provider}
	if err := t.dispatcher.Do(ctx, http.MethodPost, transferQuotePath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
