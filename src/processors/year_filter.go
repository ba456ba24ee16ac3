// backend/src/processors/year_filter.go
package processors

import "github.com/username/fursrevolut/backend/src/models"

// YearFilterResult is the outcome of restricting a parse result to one tax year.
// The removed counts are surfaced to the user so excluded activity is disclosed.
type YearFilterResult struct {
	Funds                   []models.FundTransactions
	RemovedOrders           int
	RemovedInterestPayments int
}

// FilterByYear returns a new fund set containing only orders and interest
// payments dated in the target calendar year. Funds left with no activity are
// dropped. The input is never mutated.
func FilterByYear(funds []models.FundTransactions, year int) YearFilterResult {
	result := YearFilterResult{Funds: []models.FundTransactions{}}

	for _, fund := range funds {
		filtered := models.FundTransactions{
			Currency:         fund.Currency,
			ISIN:             fund.ISIN,
			Orders:           []models.Order{},
			InterestPayments: []models.InterestPayment{},
		}

		for _, order := range fund.Orders {
			if order.Date.Year() == year {
				filtered.Orders = append(filtered.Orders, order)
			} else {
				result.RemovedOrders++
			}
		}
		for _, payment := range fund.InterestPayments {
			if payment.Date.Year() == year {
				filtered.InterestPayments = append(filtered.InterestPayments, payment)
			} else {
				result.RemovedInterestPayments++
			}
		}

		if len(filtered.Orders) == 0 && len(filtered.InterestPayments) == 0 {
			continue
		}
		result.Funds = append(result.Funds, filtered)
	}

	return result
}
