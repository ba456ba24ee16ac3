// backend/src/taxxml/kdvp.go
package taxxml

import (
	"encoding/xml"
	"fmt"
	"math"

	"github.com/username/fursrevolut/backend/src/models"
)

// inventoryListTypeSecurities is the Doh-KDVP inventory class for plain securities.
const inventoryListTypeSecurities = "PLVP"

type kdvpEnvelope struct {
	XMLName        xml.Name  `xml:"Envelope"`
	Namespace      string    `xml:"xmlns,attr"`
	EdpNamespace   string    `xml:"xmlns:edp,attr"`
	Header         edpHeader `xml:"edp:Header"`
	AttachmentList struct{}  `xml:"edp:AttachmentList"`
	Signatures     struct{}  `xml:"edp:Signatures"`
	Body           kdvpBody  `xml:"body"`
}

type kdvpBody struct {
	BodyContent struct{} `xml:"edp:bodyContent"`
	DohKDVP     dohKDVP  `xml:"Doh_KDVP"`
}

type dohKDVP struct {
	KDVP  kdvpHeader `xml:"KDVP"`
	Items []kdvpItem `xml:"KDVPItem"`
}

type kdvpHeader struct {
	DocumentWorkflowID             string `xml:"DocumentWorkflowID"`
	Year                           int    `xml:"Year"`
	PeriodStart                    string `xml:"PeriodStart"`
	PeriodEnd                      string `xml:"PeriodEnd"`
	IsResident                     bool   `xml:"IsResident"`
	SecurityCount                  int    `xml:"SecurityCount"`
	SecurityShortCount             int    `xml:"SecurityShortCount"`
	SecurityWithContractCount      int    `xml:"SecurityWithContractCount"`
	SecurityWithContractShortCount int    `xml:"SecurityWithContractShortCount"`
	ShareCount                     int    `xml:"ShareCount"`
}

type kdvpItem struct {
	InventoryListType string         `xml:"InventoryListType"`
	Securities        kdvpSecurities `xml:"Securities"`
}

type kdvpSecurities struct {
	ISIN   *string           `xml:"ISIN,omitempty"`
	IsFond bool              `xml:"IsFond"`
	Rows   []kdvpSecurityRow `xml:"Row"`
}

type kdvpSecurityRow struct {
	ID       int           `xml:"ID"`
	Purchase *kdvpPurchase `xml:"Purchase,omitempty"`
	Sale     *kdvpSale     `xml:"Sale,omitempty"`
}

// kdvpPurchase is one acquisition: date, acquisition code, quantity, unit price.
type kdvpPurchase struct {
	F1 string `xml:"F1"`
	F2 string `xml:"F2"`
	F3 string `xml:"F3"`
	F4 string `xml:"F4"`
}

// kdvpSale is one disposal: date, quantity, unit price, under-contract flag.
type kdvpSale struct {
	F6  string `xml:"F6"`
	F7  string `xml:"F7"`
	F9  string `xml:"F9"`
	F10 bool   `xml:"F10"`
}

// acquisitionCodePurchase is the F2 code for an outright purchase.
const acquisitionCodePurchase = "B"

// GenerateDohKDVP produces the capital-gains filing for every fund that has at
// least one order. Funds without orders contribute no KDVPItem. The result is
// deterministic for identical inputs; per-fund and per-order blocks follow
// input order.
func GenerateDohKDVP(funds []models.FundTransactions, year int, taxNumber string) (string, error) {
	fundsWithOrders := make([]models.FundTransactions, 0, len(funds))
	for _, fund := range funds {
		if len(fund.Orders) > 0 {
			fundsWithOrders = append(fundsWithOrders, fund)
		}
	}

	items := make([]kdvpItem, 0, len(fundsWithOrders))
	for _, fund := range fundsWithOrders {
		items = append(items, newKDVPItem(fund))
	}

	envelope := kdvpEnvelope{
		Namespace:    kdvpNamespace,
		EdpNamespace: edpNamespace,
		Header:       newEdpHeader(taxNumber),
		Body: kdvpBody{
			DohKDVP: dohKDVP{
				KDVP: kdvpHeader{
					DocumentWorkflowID: documentWorkflowOriginal,
					Year:               year,
					PeriodStart:        fmt.Sprintf("%d-01-01", year),
					PeriodEnd:          fmt.Sprintf("%d-12-31", year),
					IsResident:         true,
					SecurityCount:      len(fundsWithOrders),
				},
				Items: items,
			},
		},
	}

	out, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling Doh_KDVP document: %w", err)
	}
	return xmlDeclaration + string(out), nil
}

// newKDVPItem builds the securities item for one fund: one Row per order, IDs
// numbered 1..N in source order. The reported unit price is the EUR-per-unit
// conversion factor, not a literal purchase price, so the EUR total stays
// reconstructable from quantity and unit price.
func newKDVPItem(fund models.FundTransactions) kdvpItem {
	rows := make([]kdvpSecurityRow, 0, len(fund.Orders))
	rowID := 1

	for _, order := range fund.Orders {
		dateStr := order.Date.Format("2006-01-02")
		quantity := formatAmount(math.Abs(order.Quantity))
		unitPrice := formatAmount(math.Abs(order.PricePerUnitEUR))

		switch order.Type {
		case models.OrderTypeBuy:
			rows = append(rows, kdvpSecurityRow{
				ID: rowID,
				Purchase: &kdvpPurchase{
					F1: dateStr,
					F2: acquisitionCodePurchase,
					F3: quantity,
					F4: unitPrice,
				},
			})
		case models.OrderTypeSell:
			rows = append(rows, kdvpSecurityRow{
				ID: rowID,
				Sale: &kdvpSale{
					F6:  dateStr,
					F7:  quantity,
					F9:  unitPrice,
					F10: false,
				},
			})
		default:
			continue
		}
		rowID++
	}

	return kdvpItem{
		InventoryListType: inventoryListTypeSecurities,
		Securities: kdvpSecurities{
			ISIN:   fund.ISIN,
			IsFond: false,
			Rows:   rows,
		},
	}
}
