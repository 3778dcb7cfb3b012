// Package sdk provides the high-level entry point for the Bazik payment gateway.
//
// The client manages the bearer token transparently, validates input before it
// leaves the process, and reports every failure as an *apierr.Error.
//
// # Quick Start
//
//	import (
//		"github.com/bazik-io/bazik-sdk-go/pkg/config"
//		"github.com/bazik-io/bazik-sdk-go/pkg/model"
//		"github.com/bazik-io/bazik-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		client, err := sdk.NewClient(&config.Config{
//			UserID:    "bzk_c5b754a0_1757383229",
//			SecretKey: "sk_...",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ctx := context.Background()
//		payment, err := client.Payments().Create(ctx, &model.PaymentRequest{
//			Gdes:        1500,
//			ReferenceID: "order-1042",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("redirect the customer to", payment.RedirectURL)
//
//		done, err := client.Payments().WaitForCompletion(ctx, payment.OrderID, sdk.PollOptions{})
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("payment", done.Status)
//	}
//
// # Facades
//
//   - Payments: Create, Verify, Withdraw, GetBalance, WaitForCompletion
//   - Transfers: CheckCustomer, MonCash, NatCash, GetStatus, GetQuote
//   - Wallet: GetBalance
//
// # Authentication
//
// The first call authenticates against /token. The token is reused until it is
// within five minutes of expiry, then renewed before the next call. When the
// gateway answers 401 the client re-authenticates once and retries the call
// once; a second 401 is returned as a KindAuth error. Set
// Config.DisableAutoRefresh to take over renewal yourself with
// Client.Authenticate and Client.IsTokenValid.
//
// # Errors
//
// Use apierr.As or the kind helpers:
//
//	_, err := client.Transfers().MonCash(ctx, req)
//	switch {
//	case apierr.IsValidation(err):
//		// bad input; nothing was sent
//	case apierr.IsInsufficientFunds(err):
//		// top up the wallet
//	case apierr.IsRateLimit(err):
//		// back off
//	}
//
// # Testing
//
// WithTransport replaces the network with any transport.Transport, for
// example a transport.Func returning canned responses.
package sdk
