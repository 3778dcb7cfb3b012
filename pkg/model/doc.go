// Package model defines the request and response documents exchanged with the
// Bazik gateway.
//
// Requests are encoded with the gateway's camelCase keys (gdes, customerFirstName,
// referenceId); responses are decoded from its snake_case keys (order_id,
// delivery_amount, total_cost).
//
// # Amounts
//
// Request amounts are plain float64 values in gourdes (HTG) so they serialize as
// JSON numbers. Response amounts are decimal.Decimal and decode from either JSON
// numbers or strings without float rounding:
//
//	quote, _ := client.Transfers().GetQuote(ctx, 1000, validate.ProviderMonCash)
//	fmt.Println(quote.TotalCost.StringFixed(2)) // "1050.00"
//
// # Payment status
//
// A Payment stays StatusPending until the customer completes or abandons the
// MonCash flow. Payments.WaitForCompletion polls Verify until IsPending reports
// false.
//
// # Limits
//
//   - Payments.Create accepts at most MaxPaymentAmount gourdes.
//   - Wallet identifiers are 8 or 11 digits (see package validate).
package model
