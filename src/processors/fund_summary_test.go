package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/username/fursrevolut/backend/src/models"
)

func TestCalculateFundSummaryTotals(t *testing.T) {
	t.Parallel()
	isin := "IE00BFY0GT14"
	fund := models.FundTransactions{
		Currency: "USD",
		ISIN:     &isin,
		Orders: []models.Order{
			{Type: models.OrderTypeBuy, Date: day(2024, time.January, 2), Quantity: 100, Currency: "USD", PricePerUnitEUR: 0.9},
			{Type: models.OrderTypeBuy, Date: day(2024, time.February, 2), Quantity: 50, Currency: "USD", PricePerUnitEUR: 0.9},
			{Type: models.OrderTypeSell, Date: day(2024, time.March, 2), Quantity: 30, Currency: "USD", PricePerUnitEUR: 0.9},
		},
		InterestPayments: []models.InterestPayment{
			{Date: day(2024, time.January, 3), Amount: 2.0, Currency: "USD", AmountEUR: eur(1.8)},
			{Date: day(2024, time.February, 3), Amount: 1.0, Currency: "USD", AmountEUR: eur(0.9)},
		},
	}

	summary := CalculateFundSummary(fund)
	require.Equal(t, "USD", summary.Currency)
	require.Equal(t, &isin, summary.ISIN)
	require.Len(t, summary.BuyOrders, 2)
	require.Len(t, summary.SellOrders, 1)
	require.Equal(t, 150.0, summary.TotalBuyAmount)
	require.Equal(t, 30.0, summary.TotalSellAmount)
	require.InDelta(t, 135.0, summary.TotalBuyAmountEUR, 1e-9)
	require.InDelta(t, 27.0, summary.TotalSellAmountEUR, 1e-9)
	require.Equal(t, 3.0, summary.TotalInterestAmount)
	require.InDelta(t, 2.7, summary.TotalInterestAmountEUR, 1e-9)
	require.Equal(t, 2, summary.InterestPaymentCount)
}

func TestCalculateFundSummaryNilAmountEUR(t *testing.T) {
	t.Parallel()
	fund := models.FundTransactions{
		Currency: "GBP",
		InterestPayments: []models.InterestPayment{
			{Date: day(2024, time.January, 3), Amount: 1.5, Currency: "GBP"},
		},
	}

	summary := CalculateFundSummary(fund)
	require.Equal(t, 1.5, summary.TotalInterestAmount)
	require.Zero(t, summary.TotalInterestAmountEUR)
	require.Equal(t, 1, summary.InterestPaymentCount)
}

func TestCalculateFundSummaryEmptyFund(t *testing.T) {
	t.Parallel()
	summary := CalculateFundSummary(models.FundTransactions{Currency: "EUR"})
	require.Empty(t, summary.BuyOrders)
	require.Empty(t, summary.SellOrders)
	require.Zero(t, summary.TotalBuyAmount)
	require.Zero(t, summary.InterestPaymentCount)
}
