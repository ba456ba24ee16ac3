package taxxml

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/username/fursrevolut/backend/src/models"
)

func TestGenerateDohObrAggregatesInterest(t *testing.T) {
	t.Parallel()
	converted := 8.0
	funds := []models.FundTransactions{
		{
			Currency: "USD",
			InterestPayments: []models.InterestPayment{
				{Date: day(2024, time.January, 3), Amount: 10, Currency: "USD", AmountEUR: &converted},
			},
		},
		{
			Currency: "EUR",
			InterestPayments: []models.InterestPayment{
				// No converted amount, but already EUR: the raw amount counts.
				{Date: day(2024, time.February, 3), Amount: 1.5, Currency: "EUR"},
			},
		},
		{
			Currency: "GBP",
			InterestPayments: []models.InterestPayment{
				// Neither converted nor EUR: contributes nothing.
				{Date: day(2024, time.March, 3), Amount: 2, Currency: "GBP"},
			},
		},
	}

	out, err := GenerateDohObr(funds, 2024, testTaxNumber)
	require.NoError(t, err)
	require.Contains(t, out, "<Value>9.50</Value>")
}

func TestGenerateDohObrEnvelope(t *testing.T) {
	t.Parallel()
	amountEUR := 1.0
	funds := []models.FundTransactions{
		{
			Currency: "EUR",
			InterestPayments: []models.InterestPayment{
				{Date: day(2024, time.January, 3), Amount: 1, Currency: "EUR", AmountEUR: &amountEUR},
			},
		},
	}

	out, err := GenerateDohObr(funds, 2024, testTaxNumber)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))
	require.Contains(t, out, `xmlns="http://edavki.durs.si/Documents/Schemas/Doh_Obr_2.xsd"`)
	require.Contains(t, out, `xmlns:edp="http://edavki.durs.si/Documents/Schemas/EDP-Common-1.xsd"`)
	require.Contains(t, out, "<edp:taxNumber>12345678</edp:taxNumber>")
	require.Contains(t, out, "<edp:taxpayerType>FO</edp:taxpayerType>")

	require.Contains(t, out, "<Period>2024</Period>")
	require.Contains(t, out, "<DocumentWorkflowID>O</DocumentWorkflowID>")
	require.Contains(t, out, "<ResidentOfRepublicOfSlovenia>true</ResidentOfRepublicOfSlovenia>")
	require.Contains(t, out, "<Country>SI</Country>")

	require.Contains(t, out, "<Date>2024-12-31</Date>")
	require.Contains(t, out, "<IdentificationNumber>305799582</IdentificationNumber>")
	require.Contains(t, out, "<Name>Revolut Securities Europe UAB</Name>")
	require.Contains(t, out, "<Address>Konstitucijos ave. 21B, Vilnius, Lithuania, LT-08130</Address>")
	require.Contains(t, out, "<Type>7</Type>")
	require.Contains(t, out, "<Value>1.00</Value>")
	require.Contains(t, out, "<Country2>LT</Country2>")

	for _, slot := range []string{"Country1", "Country2", "Country3", "Country4", "Country5"} {
		require.Contains(t, out, "<"+slot+">SI</"+slot+">")
	}
}

func TestGenerateDohObrNoInterest(t *testing.T) {
	t.Parallel()
	out, err := GenerateDohObr(nil, 2024, testTaxNumber)
	require.NoError(t, err)
	require.Contains(t, out, "<Value>0.00</Value>")
}

func TestFileNames(t *testing.T) {
	t.Parallel()
	require.Equal(t, "Doh_KDVP_Revolut_2024.xml", KDVPFileName(2024))
	require.Equal(t, "Doh_Obr_Revolut_2024.xml", ObrFileName(2024))
}
