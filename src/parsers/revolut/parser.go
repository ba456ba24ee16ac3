// backend/src/parsers/revolut/parser.go

// Package revolut parses the Revolut "Flexible Cash Funds" consolidated
// statement export (CSV derived from the Excel statement).
//
// The export is a concatenation of independent sections, each introduced by a
// single-cell marker row: "Summary for Flexible Cash Funds - <CCY>" opens an
// informational summary block whose rows are never treated as transactions,
// and "Transactions for Flexible Cash Funds - <CCY>" opens a transaction block
// whose first row is a column header. Sections for the same currency merge
// into one FundTransactions record.
package revolut

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/username/fursrevolut/backend/src/fxrates"
	"github.com/username/fursrevolut/backend/src/logger"
	"github.com/username/fursrevolut/backend/src/models"
	"github.com/username/fursrevolut/backend/src/utils"
)

const (
	summaryMarkerPrefix     = "Summary for Flexible Cash Funds"
	transactionMarkerPrefix = "Transactions for Flexible Cash Funds"
)

var (
	// currencyPattern extracts the 3-letter code from a section marker like
	// "Transactions for Flexible Cash Funds - USD".
	currencyPattern = regexp.MustCompile(`- ([A-Z]{3})`)
	// isinPattern matches an ISIN as a whole word: 2 letters, 9 alphanumerics, 1 digit.
	isinPattern = regexp.MustCompile(`\b[A-Z]{2}[0-9A-Z]{9}[0-9]\b`)
	// amountJunk matches everything that is not part of a signed decimal number,
	// tolerating currency symbols and thousands separators.
	amountJunk = regexp.MustCompile(`[^0-9.\-]+`)
)

// sectionState tracks where the row scan currently is. Transaction rows are
// only consumed in stateTransactions; summary bodies and anything outside a
// recognized section are ignored.
type sectionState int

const (
	stateIdle sectionState = iota
	stateSummary
	stateTransactions
)

// Parser converts raw statement rows into per-currency fund transactions.
type Parser struct {
	rates *fxrates.Table
}

// NewParser creates a parser bound to a loaded conversion-rate table.
func NewParser(rates *fxrates.Table) *Parser {
	return &Parser{rates: rates}
}

// Parse decodes the statement CSV and extracts fund transactions.
// A structurally unreadable file returns an error; a readable file that
// matches no section markers returns an empty result.
func (p *Parser) Parse(file io.Reader) ([]models.FundTransactions, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // sections have different column counts
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("revolut parser: failed to read CSV records: %w", err)
	}
	return p.ParseRows(rows), nil
}

// ParseRows runs the section scan over already-decoded rows, preserving
// first-seen currency order. Malformed rows are skipped, never fatal.
func (p *Parser) ParseRows(rows [][]string) []models.FundTransactions {
	var (
		funds       []*models.FundTransactions
		byCurrency  = make(map[string]*models.FundTransactions)
		currentFund *models.FundTransactions
		state       = stateIdle
	)

	selectFund := func(currency string) *models.FundTransactions {
		if fund, ok := byCurrency[currency]; ok {
			return fund
		}
		fund := &models.FundTransactions{
			Currency:         currency,
			Orders:           []models.Order{},
			InterestPayments: []models.InterestPayment{},
		}
		byCurrency[currency] = fund
		funds = append(funds, fund)
		return fund
	}

	for i := 0; i < len(rows); i++ {
		row := rows[i]

		if isMarkerRow(row) {
			text := strings.TrimSpace(row[0])
			switch {
			case strings.HasPrefix(text, summaryMarkerPrefix):
				if currency, ok := currencyFromMarker(text); ok {
					currentFund = selectFund(currency)
					state = stateSummary
				} else {
					state = stateIdle
				}
			case strings.HasPrefix(text, transactionMarkerPrefix):
				if currency, ok := currencyFromMarker(text); ok {
					currentFund = selectFund(currency)
					state = stateTransactions
					// Skip exactly one row: the column-header row of the section.
					i++
				} else {
					state = stateIdle
				}
			default:
				// An unrecognized single-cell row ends whatever section was open.
				state = stateIdle
			}
			continue
		}

		if state != stateTransactions || currentFund == nil || len(row) < 3 {
			continue
		}
		p.parseTransactionRow(row, currentFund)
	}

	result := make([]models.FundTransactions, 0, len(funds))
	for _, fund := range funds {
		result = append(result, *fund)
	}
	return result
}

// parseTransactionRow classifies one transaction-section row and appends the
// resulting order or interest payment to the fund. Rows with missing fields or
// unparsable values are silently skipped.
func (p *Parser) parseTransactionRow(row []string, fund *models.FundTransactions) {
	dateStr := strings.TrimSpace(row[0])
	description := strings.TrimSpace(row[1])
	amountStr := strings.TrimSpace(row[2])
	if dateStr == "" || description == "" || amountStr == "" {
		return
	}

	date, err := utils.ParseStatementDate(dateStr)
	if err != nil {
		logger.L.Debug("Skipping row with unparsable date", "date", dateStr, "currency", fund.Currency)
		return
	}
	amount, err := cleanAmount(amountStr)
	if err != nil {
		logger.L.Debug("Skipping row with unparsable amount", "amount", amountStr, "currency", fund.Currency)
		return
	}

	// The first ISIN seen for a currency sticks, wherever it appears.
	if fund.ISIN == nil {
		if isin := isinPattern.FindString(description); isin != "" {
			fund.ISIN = &isin
		}
	}

	switch {
	case strings.HasPrefix(description, "BUY"), strings.HasPrefix(description, "SELL"):
		orderType := models.OrderTypeBuy
		if strings.HasPrefix(description, "SELL") {
			orderType = models.OrderTypeSell
		}
		rate := p.rates.Rate(date, fund.Currency)
		fund.Orders = append(fund.Orders, models.Order{
			Type:            orderType,
			Date:            date,
			Quantity:        math.Abs(amount),
			PricePerUnit:    1, // the export carries no genuine unit price
			Currency:        fund.Currency,
			PricePerUnitEUR: 1 / rate,
		})
	case strings.Contains(description, "Interest PAID"):
		rate := p.rates.Rate(date, fund.Currency)
		amountEUR := amount / rate
		fund.InterestPayments = append(fund.InterestPayments, models.InterestPayment{
			Date:      date,
			Amount:    amount,
			Currency:  fund.Currency,
			AmountEUR: &amountEUR,
		})
	default:
		// Fees, reinvestment notices and other narrative rows are ignored.
	}
}

// isMarkerRow reports whether the row is a single-cell section marker.
func isMarkerRow(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) != ""
}

// currencyFromMarker extracts the currency code from a section marker row.
func currencyFromMarker(text string) (string, bool) {
	match := currencyPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// cleanAmount strips every character except digits, '.' and '-' before parsing,
// tolerating currency symbols and thousands separators.
func cleanAmount(value string) (float64, error) {
	cleaned := amountJunk.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric content in %q", value)
	}
	return strconv.ParseFloat(cleaned, 64)
}
