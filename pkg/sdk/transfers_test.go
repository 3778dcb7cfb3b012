package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bazik-io/bazik-sdk-go/pkg/apierr"
	"github.com/bazik-io/bazik-sdk-go/pkg/model"
	"github.com/bazik-io/bazik-sdk-go/pkg/transport"
	"github.com/bazik-io/bazik-sdk-go/pkg/validate"
	"github.com/shopspring/decimal"
)

func TestTransfers_WalletFormats(t *testing.T) {
	tests := []struct {
		wallet string
		ok     bool
	}{
		{"47556677", true},
		{"12345678901", true},
		{"123", false},
		{"1234567", false},
		{"123456789", false},
		{"4755667a", false},
		{"+50947556677", false},
	}

	for _, tt := range tests {
		t.Run(tt.wallet, func(t *testing.T) {
			c, spy := newTestClient(t, routes{
				"/moncash/customers/status": reply(http.StatusOK, map[string]any{"wallet": tt.wallet, "exists": true}),
				"/natcash/transfers":        reply(http.StatusOK, map[string]any{"transaction_id": "tr_1", "status": "pending"}),
			})
			ctx := context.Background()

			_, errCheck := c.Transfers().CheckCustomer(ctx, tt.wallet)
			_, errSend := c.Transfers().NatCash(ctx, &model.PayoutRequest{
				Gdes: 100, Wallet: tt.wallet, CustomerFirstName: "Ana", CustomerLastName: "Joseph",
			})

			if tt.ok {
				if errCheck != nil || errSend != nil {
					t.Fatalf("unexpected errors: %v / %v", errCheck, errSend)
				}
				return
			}
			if !apierr.IsValidation(errCheck) || !apierr.IsValidation(errSend) {
				t.Fatalf("expected validation errors, got %v / %v", errCheck, errSend)
			}
			if spy.Total() != 0 {
				t.Fatalf("transport called %d times", spy.Total())
			}
		})
	}
}

func TestTransfers_MonCashSendsPayout(t *testing.T) {
	var sent map[string]any
	c, spy := newTestClient(t, routes{
		"/moncash/transfers": func(req *transport.Request) (*transport.Response, error) {
			_ = json.Unmarshal(req.Body, &sent)
			return reply(http.StatusOK, map[string]any{
				"transaction_id": "tr_9", "status": "successful", "gdes": 500, "fee": 10, "wallet": "47556677",
			})(req)
		},
	})

	tr, err := c.Transfers().MonCash(context.Background(), &model.PayoutRequest{
		Gdes: 500, Wallet: "47556677", CustomerFirstName: "Ana", CustomerLastName: "Joseph", ReferenceID: "pay-1",
	})
	if err != nil {
		t.Fatalf("MonCash: %v", err)
	}
	if tr.TransactionID != "tr_9" || !tr.Fee.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected transfer %+v", tr)
	}
	want := map[string]any{
		"gdes": float64(500), "wallet": "47556677", "customerFirstName": "Ana",
		"customerLastName": "Joseph", "referenceId": "pay-1",
	}
	for k, v := range want {
		if sent[k] != v {
			t.Fatalf("body[%s] = %v, want %v", k, sent[k], v)
		}
	}
	if spy.Count("/natcash/transfers") != 0 {
		t.Fatal("moncash transfer must not hit the natcash endpoint")
	}
}

func TestTransfers_GetStatusEscapesID(t *testing.T) {
	c, _ := newTestClient(t, routes{
		"/transfers/tx%3F1": reply(http.StatusOK, map[string]any{"transaction_id": "tx?1", "status": "failed", "failure_reason": "wallet closed"}),
	})

	tr, err := c.Transfers().GetStatus(context.Background(), "tx?1")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if tr.Status != "failed" || tr.FailureReason != "wallet closed" {
		t.Fatalf("unexpected transfer %+v", tr)
	}

	if _, err := c.Transfers().GetStatus(context.Background(), ""); !apierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransfers_GetQuote(t *testing.T) {
	var sent map[string]any
	c, spy := newTestClient(t, routes{
		"/transfers/quote": func(req *transport.Request) (*transport.Response, error) {
			_ = json.Unmarshal(req.Body, &sent)
			return reply(http.StatusOK, map[string]any{"delivery_amount": 1000, "fee": 50, "total_cost": 1050})(req)
		},
	})
	ctx := context.Background()

	if _, err := c.Transfers().GetQuote(ctx, 100, "paypal"); !apierr.IsValidation(err) {
		t.Fatalf("expected validation error for unknown provider, got %v", err)
	}
	if _, err := c.Transfers().GetQuote(ctx, -5, validate.ProviderNatCash); !apierr.IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
	if spy.Total() != 0 {
		t.Fatalf("transport called %d times", spy.Total())
	}

	q, err := c.Transfers().GetQuote(ctx, 1000, validate.ProviderMonCash)
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if !q.DeliveryAmount.Equal(decimal.NewFromInt(1000)) ||
		!q.Fee.Equal(decimal.NewFromInt(50)) ||
		!q.TotalCost.Equal(decimal.NewFromInt(1050)) {
		t.Fatalf("unexpected quote %+v", q)
	}
	if sent["amount"] != float64(1000) || sent["provider"] != "moncash" {
		t.Fatalf("unexpected request body %v", sent)
	}
}
