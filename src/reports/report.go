// backend/src/reports/report.go

// Package reports renders the human-readable transaction report offered to the
// user as a downloadable text file. Headings are Slovenian, dates are
// DD.MM.YYYY and amounts use the Slovenian numeric convention (comma decimal
// separator, dot thousands separator).
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/fursrevolut/backend/src/models"
	"github.com/username/fursrevolut/backend/src/processors"
)

// InterestTaxRate is the flat Slovenian tax rate on interest income.
const InterestTaxRate = 0.25

// ReportFileName is the fixed download name of the text report.
const ReportFileName = "davcni_obrazci_revolut.txt"

// Generate renders the full transaction report for the supplied funds.
func Generate(funds []models.FundTransactions) string {
	var b strings.Builder
	b.WriteString("# Poročilo o transakcijah Revolut Flexible Accounts\n\n")

	for _, fund := range funds {
		b.WriteString(fmt.Sprintf("## Valuta: %s", fund.Currency))
		if fund.ISIN != nil {
			b.WriteString(fmt.Sprintf(" (ISIN: %s)", *fund.ISIN))
		}
		b.WriteString("\n\n")

		if len(fund.Orders) > 0 {
			b.WriteString("### Nakupi in prodaje\n\n")
			b.WriteString("Datum | Tip | Količina | Cena na enoto | Znesek (EUR)\n")
			b.WriteString("------|-----|----------|---------------|------------\n")
			for _, order := range fund.Orders {
				b.WriteString(fmt.Sprintf("%s | %s | %s %s | %g | %s EUR\n",
					FormatDate(order.Date),
					order.Type,
					FormatNumber(order.Quantity),
					fund.Currency,
					order.PricePerUnit,
					FormatNumber(order.ValueEUR()),
				))
			}
			b.WriteString("\n")
		}

		if len(fund.InterestPayments) > 0 {
			b.WriteString("### Izplačila obresti\n\n")
			b.WriteString("Datum | Znesek | Znesek (EUR)\n")
			b.WriteString("------|--------|------------\n")
			for _, payment := range fund.InterestPayments {
				amountEUR := "N/A"
				if payment.AmountEUR != nil {
					amountEUR = FormatNumber(*payment.AmountEUR)
				}
				b.WriteString(fmt.Sprintf("%s | %s %s | %s EUR\n",
					FormatDate(payment.Date),
					FormatNumber(payment.Amount),
					fund.Currency,
					amountEUR,
				))
			}
			b.WriteString("\n")

			summary := processors.CalculateFundSummary(fund)
			taxObligation := summary.TotalInterestAmount * InterestTaxRate
			taxObligationEUR := summary.TotalInterestAmountEUR * InterestTaxRate

			b.WriteString("### Davčna obveznost\n\n")
			b.WriteString(fmt.Sprintf("Skupni znesek obresti: **%s %s** (%s EUR)\n",
				FormatNumber(summary.TotalInterestAmount), fund.Currency, FormatNumber(summary.TotalInterestAmountEUR)))
			b.WriteString(fmt.Sprintf("Davčna obveznost (25%%): **%s %s** (%s EUR)\n\n",
				FormatNumber(taxObligation), fund.Currency, FormatNumber(taxObligationEUR)))
		}

		b.WriteString("\n")
	}

	return b.String()
}

// FormatDate renders a date as DD.MM.YYYY.
func FormatDate(date time.Time) string {
	return date.Format("02.01.2006")
}

// FormatNumber formats a value with exactly 2 decimal digits, comma as decimal
// separator and dot as thousands separator.
func FormatNumber(value float64) string {
	fixed := fmt.Sprintf("%.2f", value)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "," + fracPart
	if negative {
		result = "-" + result
	}
	return result
}
