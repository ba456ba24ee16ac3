// backend/src/services/interfaces.go
package services

import (
	"errors"
	"io"

	"github.com/username/fursrevolut/backend/src/models"
	"github.com/username/fursrevolut/backend/src/taxxml"
)

// Document map keys, also used as URL path segments by the handlers.
const (
	DocumentKeyKDVP     = "kdvp"
	DocumentKeyInterest = "interest"
)

// StatementResult is the outcome of processing one uploaded statement for one
// tax year. It is cached in memory under ID so the report and document
// endpoints can serve downloads without a re-upload; nothing is persisted.
type StatementResult struct {
	ID   string `json:"id"`
	Year int    `json:"year"`

	Funds     []models.FundTransactions `json:"funds"`
	Summaries []models.FundSummary      `json:"summaries"`

	// Activity outside the tax year, disclosed to the user.
	RemovedOrders           int `json:"removedOrders"`
	RemovedInterestPayments int `json:"removedInterestPayments"`

	// AvailableDocuments lists the document keys this statement can produce.
	AvailableDocuments []string `json:"availableDocuments"`
}

// Define common service errors
var (
	ErrParsingFailed     = errors.New("csv parsing failed")
	ErrStatementNotFound = errors.New("statement not found or expired")
	ErrInvalidTaxNumber  = errors.New("invalid tax number")
	ErrUnknownDocument   = errors.New("no such document for this statement")
)

// StatementService defines the interface for the core statement processing logic.
type StatementService interface {
	// ProcessStatement parses the uploaded CSV, filters it to the tax year and
	// caches the result under a fresh statement ID.
	ProcessStatement(fileReader io.Reader, year int) (*StatementResult, error)

	// GetStatement returns a previously processed result, or ErrStatementNotFound.
	GetStatement(id string) (*StatementResult, error)

	// GenerateReport renders the plain-text transaction report for a statement.
	GenerateReport(id string) (string, error)

	// GenerateTaxDocuments produces every available filing document for a
	// statement. The tax number gates this path only; parsing and the report
	// never require it.
	GenerateTaxDocuments(id string, taxNumber string) (map[string]taxxml.Document, error)

	// GenerateTaxDocument produces a single filing document by key.
	GenerateTaxDocument(id string, key string, taxNumber string) (*taxxml.Document, error)
}
