// backend/src/taxxml/obr.go
package taxxml

import (
	"encoding/xml"
	"fmt"

	"github.com/username/fursrevolut/backend/src/models"
)

// Fixed payer identity for the broker entity paying out the interest.
const (
	payerIdentificationNumber = "305799582"
	payerName                 = "Revolut Securities Europe UAB"
	payerAddress              = "Konstitucijos ave. 21B, Vilnius, Lithuania, LT-08130"
	payerCountry              = "LT"

	// interestTypeOther is the Doh-Obr income-type code for this interest class.
	interestTypeOther = 7

	countrySlovenia = "SI"
)

type obrEnvelope struct {
	XMLName        xml.Name  `xml:"Envelope"`
	Namespace      string    `xml:"xmlns,attr"`
	EdpNamespace   string    `xml:"xmlns:edp,attr"`
	Header         edpHeader `xml:"edp:Header"`
	AttachmentList struct{}  `xml:"edp:AttachmentList"`
	Signatures     struct{}  `xml:"edp:Signatures"`
	Body           obrBody   `xml:"body"`
}

type obrBody struct {
	BodyContent struct{} `xml:"edp:bodyContent"`
	DohObr      dohObr   `xml:"Doh_Obr"`
}

type dohObr struct {
	Period                       int          `xml:"Period"`
	DocumentWorkflowID           string       `xml:"DocumentWorkflowID"`
	ResidentOfRepublicOfSlovenia bool         `xml:"ResidentOfRepublicOfSlovenia"`
	Country                      string       `xml:"Country"`
	Interest                     obrInterest  `xml:"Interest"`
	Reduction                    obrReduction `xml:"Reduction"`
}

type obrInterest struct {
	Date                 string `xml:"Date"`
	IdentificationNumber string `xml:"IdentificationNumber"`
	Name                 string `xml:"Name"`
	Address              string `xml:"Address"`
	Country              string `xml:"Country"`
	Type                 int    `xml:"Type"`
	Value                string `xml:"Value"`
	Country2             string `xml:"Country2"`
}

// obrReduction is the five-slot double-taxation relief block. All slots are
// currently Slovenia.
type obrReduction struct {
	Country1 string `xml:"Country1"`
	Country2 string `xml:"Country2"`
	Country3 string `xml:"Country3"`
	Country4 string `xml:"Country4"`
	Country5 string `xml:"Country5"`
}

// GenerateDohObr produces the foreign interest-income filing: a single
// aggregated Interest record whose Value is the EUR sum of every interest
// payment across all supplied funds. A payment contributes its converted EUR
// amount when present; a raw amount counts only when already in EUR.
func GenerateDohObr(funds []models.FundTransactions, year int, taxNumber string) (string, error) {
	var totalInterestEUR float64
	for _, fund := range funds {
		for _, payment := range fund.InterestPayments {
			switch {
			case payment.AmountEUR != nil:
				totalInterestEUR += *payment.AmountEUR
			case payment.Currency == "EUR":
				totalInterestEUR += payment.Amount
			}
		}
	}

	envelope := obrEnvelope{
		Namespace:    obrNamespace,
		EdpNamespace: edpNamespace,
		Header:       newEdpHeader(taxNumber),
		Body: obrBody{
			DohObr: dohObr{
				Period:                       year,
				DocumentWorkflowID:           documentWorkflowOriginal,
				ResidentOfRepublicOfSlovenia: true,
				Country:                      countrySlovenia,
				Interest: obrInterest{
					Date:                 fmt.Sprintf("%d-12-31", year),
					IdentificationNumber: payerIdentificationNumber,
					Name:                 payerName,
					Address:              payerAddress,
					Country:              payerCountry,
					Type:                 interestTypeOther,
					Value:                formatAmount(totalInterestEUR),
					Country2:             payerCountry,
				},
				Reduction: obrReduction{
					Country1: countrySlovenia,
					Country2: countrySlovenia,
					Country3: countrySlovenia,
					Country4: countrySlovenia,
					Country5: countrySlovenia,
				},
			},
		},
	}

	out, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling Doh_Obr document: %w", err)
	}
	return xmlDeclaration + string(out), nil
}
