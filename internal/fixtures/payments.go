package fixtures

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bitcoin payment statuses as the backend stores them.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
	PaymentStatusUnderpaid = "UNDERPAID"
	PaymentStatusOverpaid  = "OVERPAID"
)

// TestBitcoinPayment references an order by id. Underpaid and Overpaid are
// authored flags, not computed from the satoshi amounts: the specs assert
// how the UI renders a mismatch, and the seeder persists the flags as
// written rather than second-guessing them.
type TestBitcoinPayment struct {
	ID                 string
	OrderID            string
	Address            string
	AmountExpectedSats int64
	AmountReceivedSats int64
	Confirmations      int
	Underpaid          bool
	Overpaid           bool
	BTCUSDRate         decimal.Decimal
	Status             string
}

// Clone returns a deep copy.
func (p TestBitcoinPayment) Clone() TestBitcoinPayment { return p }

var bitcoinPayments = []TestBitcoinPayment{
	{
		ID:                 "fixture-btc-pay-1",
		OrderID:            "fixture-order-1002",
		Address:            "bc1qe2e0confirmed000000000000000000000000",
		AmountExpectedSats: 91230,
		AmountReceivedSats: 91230,
		Confirmations:      6,
		BTCUSDRate:         decimal.RequireFromString("65250.00"),
		Status:             PaymentStatusConfirmed,
	},
	{
		ID:                 "fixture-btc-pay-2",
		OrderID:            "fixture-order-3001",
		Address:            "bc1qe2e0underpaid00000000000000000000000",
		AmountExpectedSats: 49750,
		AmountReceivedSats: 43000,
		Confirmations:      2,
		Underpaid:          true,
		BTCUSDRate:         decimal.RequireFromString("65250.00"),
		Status:             PaymentStatusUnderpaid,
	},
	{
		ID:                 "fixture-btc-pay-3",
		OrderID:            "fixture-order-3001",
		Address:            "bc1qe2e0overpaid000000000000000000000000",
		AmountExpectedSats: 49750,
		AmountReceivedSats: 52100,
		Confirmations:      1,
		Overpaid:           true,
		BTCUSDRate:         decimal.RequireFromString("65250.00"),
		Status:             PaymentStatusOverpaid,
	},
}

// BitcoinPayments returns every catalog payment.
func BitcoinPayments() []TestBitcoinPayment {
	out := make([]TestBitcoinPayment, len(bitcoinPayments))
	for i, p := range bitcoinPayments {
		out[i] = p.Clone()
	}
	return out
}

// BitcoinPaymentByID looks up a payment by id.
func BitcoinPaymentByID(id string) (TestBitcoinPayment, error) {
	for _, p := range bitcoinPayments {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return TestBitcoinPayment{}, fmt.Errorf("fixtures: no bitcoin payment with id %q", id)
}

// PaymentMethodConfiguration is one storefront payment option. The five
// records and their _id strings are fixed; bootstrap upserts all of them on
// every run.
type PaymentMethodConfiguration struct {
	ID           string
	Method       string
	DisplayName  string
	Enabled      bool
	DisplayOrder int
}

// Clone returns a copy.
func (c PaymentMethodConfiguration) Clone() PaymentMethodConfiguration { return c }

var paymentMethodConfigurations = []PaymentMethodConfiguration{
	{ID: "pmc-cashapp", Method: "CASH_APP", DisplayName: "Cash App", Enabled: true, DisplayOrder: 1},
	{ID: "pmc-solana", Method: "SOLANA_PAY", DisplayName: "Solana Pay", Enabled: true, DisplayOrder: 2},
	{ID: "pmc-bitcoin", Method: "BITCOIN", DisplayName: "Bitcoin", Enabled: true, DisplayOrder: 3},
	{ID: "pmc-zelle", Method: "ZELLE", DisplayName: "Zelle", Enabled: false, DisplayOrder: 4},
	{ID: "pmc-ach", Method: "ACH", DisplayName: "ACH Transfer", Enabled: false, DisplayOrder: 5},
}

// PaymentMethodConfigurations returns the fixed set of five configurations.
func PaymentMethodConfigurations() []PaymentMethodConfiguration {
	out := make([]PaymentMethodConfiguration, len(paymentMethodConfigurations))
	for i, c := range paymentMethodConfigurations {
		out[i] = c.Clone()
	}
	return out
}
