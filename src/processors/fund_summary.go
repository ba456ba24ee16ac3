// backend/src/processors/fund_summary.go
package processors

import (
	"math"

	"github.com/username/fursrevolut/backend/src/models"
)

// CalculateFundSummary computes the aggregate figures for one fund. All totals
// are sums of absolute values; direction is carried only by the order type.
func CalculateFundSummary(fund models.FundTransactions) models.FundSummary {
	summary := models.FundSummary{
		Currency:             fund.Currency,
		ISIN:                 fund.ISIN,
		BuyOrders:            []models.Order{},
		SellOrders:           []models.Order{},
		InterestPaymentCount: len(fund.InterestPayments),
	}

	for _, order := range fund.Orders {
		switch order.Type {
		case models.OrderTypeBuy:
			summary.BuyOrders = append(summary.BuyOrders, order)
			summary.TotalBuyAmount += math.Abs(order.Quantity)
			summary.TotalBuyAmountEUR += math.Abs(order.ValueEUR())
		case models.OrderTypeSell:
			summary.SellOrders = append(summary.SellOrders, order)
			summary.TotalSellAmount += math.Abs(order.Quantity)
			summary.TotalSellAmountEUR += math.Abs(order.ValueEUR())
		}
	}

	for _, payment := range fund.InterestPayments {
		summary.TotalInterestAmount += math.Abs(payment.Amount)
		if payment.AmountEUR != nil {
			summary.TotalInterestAmountEUR += math.Abs(*payment.AmountEUR)
		}
	}

	return summary
}
