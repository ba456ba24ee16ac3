// backend/src/models/models.go
package models

import "time"

// OrderType distinguishes buy and sell executions.
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// Order is a single buy or sell execution of fund units.
type Order struct {
	Type     OrderType `json:"type"`
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"` // absolute units traded, never negative
	// PricePerUnit is a display-only placeholder; the Revolut export carries no
	// genuine per-unit price, so this is always 1.
	PricePerUnit float64 `json:"pricePerUnit"`
	Currency     string  `json:"currency"`
	// PricePerUnitEUR is the reciprocal of the day's EUR conversion rate, so that
	// Quantity * PricePerUnitEUR reconstructs the EUR value of the line.
	PricePerUnitEUR float64 `json:"pricePerUnitInEur"`
}

// ValueEUR returns the EUR value of the order line.
func (o Order) ValueEUR() float64 {
	return o.Quantity * o.PricePerUnitEUR
}

// InterestPayment is a single interest credit on a fund balance.
type InterestPayment struct {
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"` // stored as provided in the source, may be signed
	Currency string    `json:"currency"`
	// AmountEUR is the amount converted to EUR. Nil only when no conversion was
	// possible at all, which the rate fallback chain normally prevents.
	AmountEUR *float64 `json:"quantityInEur,omitempty"`
}

// FundTransactions aggregates all activity for one currency-denominated
// sub-account of the savings product.
type FundTransactions struct {
	Currency string `json:"currency"`
	// ISIN is the first ISIN discovered in any row belonging to this currency.
	ISIN             *string           `json:"isin,omitempty"`
	Orders           []Order           `json:"orders"`
	InterestPayments []InterestPayment `json:"interest_payments"`
}

// ConversionRateRow is one calendar day's EUR foreign-exchange snapshot.
// EUR itself is implicitly 1 and never stored in Rates.
type ConversionRateRow struct {
	Date  string             `json:"date"` // YYYY-MM-DD
	Rates map[string]float64 `json:"rates"`
}

// FundSummary carries the aggregate figures for one fund, shared by the text
// report and the upload response.
type FundSummary struct {
	Currency string  `json:"currency"`
	ISIN     *string `json:"isin,omitempty"`

	BuyOrders  []Order `json:"buyTransactions"`
	SellOrders []Order `json:"sellTransactions"`

	TotalBuyAmount      float64 `json:"totalBuyAmount"`
	TotalSellAmount     float64 `json:"totalSellAmount"`
	TotalInterestAmount float64 `json:"totalInterestAmount"`

	TotalBuyAmountEUR      float64 `json:"totalBuyAmountEur"`
	TotalSellAmountEUR     float64 `json:"totalSellAmountEur"`
	TotalInterestAmountEUR float64 `json:"totalInterestAmountEur"`

	InterestPaymentCount int `json:"interestPaymentCount"`
}
