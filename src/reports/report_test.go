package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/username/fursrevolut/backend/src/models"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "0,00"},
		{"plain", 1.5, "1,50"},
		{"rounded", 0.555, "0,56"},
		{"thousands", 1234.5, "1.234,50"},
		{"millions", 1000000, "1.000.000,00"},
		{"negative", -0.25, "-0,25"},
		{"negative thousands", -12345.67, "-12.345,67"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, FormatNumber(tc.value))
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()
	require.Equal(t, "02.01.2024", FormatDate(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "31.12.2024", FormatDate(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestGenerateFullReport(t *testing.T) {
	t.Parallel()
	isin := "IE00BFY0GT14"
	amountEUR := 1.0
	funds := []models.FundTransactions{
		{
			Currency: "EUR",
			ISIN:     &isin,
			Orders: []models.Order{
				{
					Type:            models.OrderTypeBuy,
					Date:            time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
					Quantity:        1000,
					PricePerUnit:    1,
					Currency:        "EUR",
					PricePerUnitEUR: 1,
				},
			},
			InterestPayments: []models.InterestPayment{
				{
					Date:      time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
					Amount:    1.0,
					Currency:  "EUR",
					AmountEUR: &amountEUR,
				},
			},
		},
	}

	report := Generate(funds)
	require.Contains(t, report, "# Poročilo o transakcijah Revolut Flexible Accounts")
	require.Contains(t, report, "## Valuta: EUR (ISIN: IE00BFY0GT14)")
	require.Contains(t, report, "### Nakupi in prodaje")
	require.Contains(t, report, "02.01.2024 | BUY | 1.000,00 EUR | 1 | 1.000,00 EUR")
	require.Contains(t, report, "### Izplačila obresti")
	require.Contains(t, report, "03.01.2024 | 1,00 EUR | 1,00 EUR")
	require.Contains(t, report, "### Davčna obveznost")
	require.Contains(t, report, "Skupni znesek obresti: **1,00 EUR** (1,00 EUR)")
	require.Contains(t, report, "Davčna obveznost (25%): **0,25 EUR** (0,25 EUR)")
}

func TestGenerateOmitsEmptySections(t *testing.T) {
	t.Parallel()
	funds := []models.FundTransactions{
		{
			Currency: "USD",
			InterestPayments: []models.InterestPayment{
				{Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Amount: 0.5, Currency: "USD"},
			},
		},
	}

	report := Generate(funds)
	require.Contains(t, report, "## Valuta: USD\n")
	require.NotContains(t, report, "### Nakupi in prodaje")
	require.Contains(t, report, "### Izplačila obresti")
	// No EUR conversion available for the payment.
	require.Contains(t, report, "01.06.2024 | 0,50 USD | N/A EUR")
}

func TestGenerateEmptyFunds(t *testing.T) {
	t.Parallel()
	report := Generate(nil)
	require.Contains(t, report, "# Poročilo o transakcijah Revolut Flexible Accounts")
	require.NotContains(t, report, "## Valuta:")
}
