// backend/src/services/statement_service.go
package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/fursrevolut/backend/src/fxrates"
	"github.com/username/fursrevolut/backend/src/logger"
	"github.com/username/fursrevolut/backend/src/models"
	"github.com/username/fursrevolut/backend/src/parsers/revolut"
	"github.com/username/fursrevolut/backend/src/processors"
	"github.com/username/fursrevolut/backend/src/reports"
	"github.com/username/fursrevolut/backend/src/security/validation"
	"github.com/username/fursrevolut/backend/src/taxxml"
)

type statementServiceImpl struct {
	// rates is read-only and shared across all calls; each ProcessStatement
	// call builds its own parser, so repeated or concurrent uploads are safe.
	rates   *fxrates.Table
	results *cache.Cache
}

// NewStatementService creates the service around a loaded conversion-rate
// table and a result cache.
func NewStatementService(rates *fxrates.Table, results *cache.Cache) StatementService {
	return &statementServiceImpl{
		rates:   rates,
		results: results,
	}
}

func (s *statementServiceImpl) ProcessStatement(fileReader io.Reader, year int) (*StatementResult, error) {
	parser := revolut.NewParser(s.rates)
	funds, err := parser.Parse(fileReader)
	if err != nil {
		logger.L.Warn("Statement CSV could not be decoded", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	filtered := processors.FilterByYear(funds, year)

	summaries := make([]models.FundSummary, 0, len(filtered.Funds))
	for _, fund := range filtered.Funds {
		summaries = append(summaries, processors.CalculateFundSummary(fund))
	}

	result := &StatementResult{
		ID:                      uuid.New().String(),
		Year:                    year,
		Funds:                   filtered.Funds,
		Summaries:               summaries,
		RemovedOrders:           filtered.RemovedOrders,
		RemovedInterestPayments: filtered.RemovedInterestPayments,
		AvailableDocuments:      availableDocuments(filtered.Funds),
	}

	s.results.Set(result.ID, result, cache.DefaultExpiration)

	logger.L.Info("Statement processed",
		"statementID", result.ID,
		"year", year,
		"funds", len(result.Funds),
		"removedOrders", result.RemovedOrders,
		"removedInterestPayments", result.RemovedInterestPayments)
	return result, nil
}

func (s *statementServiceImpl) GetStatement(id string) (*StatementResult, error) {
	if cached, found := s.results.Get(id); found {
		return cached.(*StatementResult), nil
	}
	return nil, ErrStatementNotFound
}

func (s *statementServiceImpl) GenerateReport(id string) (string, error) {
	result, err := s.GetStatement(id)
	if err != nil {
		return "", err
	}
	return reports.Generate(result.Funds), nil
}

func (s *statementServiceImpl) GenerateTaxDocuments(id string, taxNumber string) (map[string]taxxml.Document, error) {
	if err := validation.ValidateTaxNumber(taxNumber); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaxNumber, err)
	}
	result, err := s.GetStatement(id)
	if err != nil {
		return nil, err
	}

	documents := make(map[string]taxxml.Document)

	if hasOrders(result.Funds) {
		xmlText, err := taxxml.GenerateDohKDVP(result.Funds, result.Year, taxNumber)
		if err != nil {
			return nil, err
		}
		documents[DocumentKeyKDVP] = taxxml.Document{
			FileName: taxxml.KDVPFileName(result.Year),
			XML:      xmlText,
		}
	}

	if hasInterest(result.Funds) {
		xmlText, err := taxxml.GenerateDohObr(result.Funds, result.Year, taxNumber)
		if err != nil {
			return nil, err
		}
		documents[DocumentKeyInterest] = taxxml.Document{
			FileName: taxxml.ObrFileName(result.Year),
			XML:      xmlText,
		}
	}

	return documents, nil
}

func (s *statementServiceImpl) GenerateTaxDocument(id string, key string, taxNumber string) (*taxxml.Document, error) {
	documents, err := s.GenerateTaxDocuments(id, taxNumber)
	if err != nil {
		return nil, err
	}
	document, ok := documents[key]
	if !ok {
		return nil, ErrUnknownDocument
	}
	return &document, nil
}

func availableDocuments(funds []models.FundTransactions) []string {
	keys := []string{}
	if hasOrders(funds) {
		keys = append(keys, DocumentKeyKDVP)
	}
	if hasInterest(funds) {
		keys = append(keys, DocumentKeyInterest)
	}
	return keys
}

func hasOrders(funds []models.FundTransactions) bool {
	for _, fund := range funds {
		if len(fund.Orders) > 0 {
			return true
		}
	}
	return false
}

func hasInterest(funds []models.FundTransactions) bool {
	for _, fund := range funds {
		if len(fund.InterestPayments) > 0 {
			return true
		}
	}
	return false
}
