package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPaymentAmount is the largest amount, in gourdes, accepted by Payments.Create.
const MaxPaymentAmount = 75000

// Payment statuses reported by the gateway. StatusPending is the only
// non-terminal one.
const (
	StatusPending    = "pending"
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// PaymentRequest creates a MonCash payment order.
type PaymentRequest struct {
	// Gdes is the amount in gourdes, at most MaxPaymentAmount.
	Gdes              float64           `json:"gdes"`
	UserID            string            `json:"userID,omitempty"`
	ReferenceID       string            `json:"referenceId,omitempty"`
	Description       string            `json:"description,omitempty"`
	CustomerFirstName string            `json:"customerFirstName,omitempty"`
	CustomerLastName  string            `json:"customerLastName,omitempty"`
	CustomerEmail     string            `json:"customerEmail,omitempty"`
	SuccessURL        string            `json:"successUrl,omitempty"`
	ErrorURL          string            `json:"errorUrl,omitempty"`
	WebhookURL        string            `json:"webhookUrl,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// Payment is a payment order as returned by create and verify calls.
type Payment struct {
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Status        string          `json:"status"`
	Gdes          decimal.Decimal `json:"gdes"`
	Fee           decimal.Decimal `json:"fee,omitzero"`
	Payer         string          `json:"payer,omitempty"`
	RedirectURL   string          `json:"redirect_url,omitempty"`
	Message       string          `json:"message,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// IsPending reports whether the payment has not reached a terminal status yet.
func (p *Payment) IsPending() bool {
	return p.Status == StatusPending
}

// PayoutRequest moves money to a mobile-money wallet. It is shared by
// withdrawals and MonCash/NatCash transfers.
type PayoutRequest struct {
	Gdes              float64 `json:"gdes"`
	Wallet            string  `json:"wallet"`
	CustomerFirstName string  `json:"customerFirstName"`
	CustomerLastName  string  `json:"customerLastName"`
	CustomerEmail     string  `json:"customerEmail,omitempty"`
	Description       string  `json:"description,omitempty"`
	ReferenceID       string  `json:"referenceId,omitempty"`
	WebhookURL        string  `json:"webhookUrl,omitempty"`
}

// Withdrawal is the gateway's answer to a withdraw call.
type Withdrawal struct {
	TransactionID string          `json:"transaction_id"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Status        string          `json:"status"`
	Gdes          decimal.Decimal `json:"gdes"`
	Wallet        string          `json:"wallet"`
	Message       string          `json:"message,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
}

// Transfer is a MonCash or NatCash transfer.
type Transfer struct {
	TransactionID  string          `json:"transaction_id"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Provider       string          `json:"provider,omitempty"`
	Status         string          `json:"status"`
	Gdes           decimal.Decimal `json:"gdes"`
	Fee            decimal.Decimal `json:"fee,omitzero"`
	TotalCost      decimal.Decimal `json:"total_cost,omitzero"`
	Wallet         string          `json:"wallet"`
	RecipientName  string          `json:"recipient_name,omitempty"`
	Message        string          `json:"message,omitempty"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	ProviderStatus string          `json:"provider_status,omitempty"`
}

// CustomerStatusRequest asks whether a wallet belongs to a registered customer.
type CustomerStatusRequest struct {
	Wallet string `json:"wallet"`
}

// CustomerStatus is the KYC status of a MonCash wallet.
type CustomerStatus struct {
	Wallet    string `json:"wallet"`
	Exists    bool   `json:"exists"`
	Status    string `json:"status,omitempty"`
	Type      string `json:"type,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// QuoteRequest asks for the fee on a prospective transfer.
type QuoteRequest struct {
	Amount   float64 `json:"amount"`
	Provider string  `json:"provider"`
}

// Quote is the cost breakdown of a prospective transfer.
type Quote struct {
	DeliveryAmount decimal.Decimal `json:"delivery_amount"`
	Fee            decimal.Decimal `json:"fee"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Provider       string          `json:"provider,omitempty"`
	Currency       string          `json:"currency,omitempty"`
}

// Balance is the merchant's payment balance.
type Balance struct {
	Available decimal.Decimal `json:"available"`
	Pending   decimal.Decimal `json:"pending,omitzero"`
	Reserved  decimal.Decimal `json:"reserved,omitzero"`
	Currency  string          `json:"currency,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// Wallet is the merchant's transfer wallet.
type Wallet struct {
	WalletID  string          `json:"wallet_id,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency,omitempty"`
	Status    string          `json:"status,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}
