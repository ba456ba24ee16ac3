// backend/src/taxxml/taxxml.go

// Package taxxml generates the two eDavki filing documents: Doh-KDVP
// (capital gains from securities) and Doh-Obr (interest income from abroad).
//
// Element names, nesting and ordering are fixed by the government schemas and
// must not be reformatted. Documents are built with typed structs and
// encoding/xml so output is always well-formed and escaped.
package taxxml

import (
	"fmt"
	"strconv"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

	edpNamespace  = "http://edavki.durs.si/Documents/Schemas/EDP-Common-1.xsd"
	kdvpNamespace = "http://edavki.durs.si/Documents/Schemas/Doh_KDVP_9.xsd"
	obrNamespace  = "http://edavki.durs.si/Documents/Schemas/Doh_Obr_2.xsd"

	// taxpayerTypeNaturalPerson is the eDavki code for a natural person.
	taxpayerTypeNaturalPerson = "FO"

	// documentWorkflowOriginal marks an original (non-corrective) filing.
	documentWorkflowOriginal = "O"
)

// Document is one generated filing, paired with its deterministic download name.
type Document struct {
	FileName string `json:"fileName"`
	XML      string `json:"-"`
}

// edpHeader is the common EDP envelope header carrying the taxpayer identity.
type edpHeader struct {
	Taxpayer edpTaxpayer `xml:"edp:taxpayer"`
}

type edpTaxpayer struct {
	TaxNumber    string `xml:"edp:taxNumber"`
	TaxpayerType string `xml:"edp:taxpayerType"`
}

func newEdpHeader(taxNumber string) edpHeader {
	return edpHeader{
		Taxpayer: edpTaxpayer{
			TaxNumber:    taxNumber,
			TaxpayerType: taxpayerTypeNaturalPerson,
		},
	}
}

// KDVPFileName returns the download name of the capital-gains document.
func KDVPFileName(year int) string {
	return fmt.Sprintf("Doh_KDVP_Revolut_%d.xml", year)
}

// ObrFileName returns the download name of the interest-income document.
func ObrFileName(year int) string {
	return fmt.Sprintf("Doh_Obr_Revolut_%d.xml", year)
}

// formatAmount renders a monetary value with exactly 2 decimal digits and a
// period separator, as the schemas require.
func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
