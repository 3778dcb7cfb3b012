package sdk

import (
	"context"
	"net/http"

	"github.com/bazik-io/bazik-sdk-go/pkg/dispatch"
	"github.com/bazik-io/bazik-sdk-go/pkg/model"
)

const walletPath = "/wallet"

// Wallet reads the merchant's transfer wallet.
type Wallet interface {
	GetBalance(ctx context.Context) (*model.Wallet, error)
}

type walletClient struct {
	dispatcher *dispatch.Dispatcher
}

func newWalletClient(d *dispatch.Dispatcher) *walletClient {
	return &walletClient{dispatcher: d}
}

func (w *walletClient) GetBalance(ctx context.Context) (*model.Wallet, error) {
	var out model.Wallet
	if err := w.dispatcher.Do(ctx, http.MethodGet, walletPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
