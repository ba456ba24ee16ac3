// backend/src/fxrates/table.go
package fxrates

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fursrevolut/backend/src/logger"
	"github.com/username/fursrevolut/backend/src/models"
)

const dateFormat = "2006-01-02"

// Table is a read-only, date-indexed table of EUR conversion rates per currency.
// It is loaded once and shared by all parse calls; lookups never mutate the rows.
type Table struct {
	rows []models.ConversionRateRow
	// lookupCache memoizes resolved (currency, date) pairs, including fallback
	// resolutions, so repeated statements do not rescan the table.
	lookupCache *cache.Cache
}

// New builds a Table from already-loaded rows.
func New(rows []models.ConversionRateRow) *Table {
	return &Table{
		rows:        rows,
		lookupCache: cache.New(24*time.Hour, 48*time.Hour),
	}
}

// Load reads the conversion-rates JSON resource from disk. On any read or
// decode error it logs and returns an empty table: all non-EUR lookups then
// degrade to rate 1 instead of failing the whole operation.
func Load(path string) *Table {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.L.Warn("Conversion rates resource unavailable, proceeding with empty table", "path", path, "error", err)
		return New(nil)
	}
	var rows []models.ConversionRateRow
	if err := json.Unmarshal(data, &rows); err != nil {
		logger.L.Warn("Conversion rates resource malformed, proceeding with empty table", "path", path, "error", err)
		return New(nil)
	}
	logger.L.Info("Conversion rates loaded", "path", path, "days", len(rows))
	return New(rows)
}

// Len reports the number of daily snapshots in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rate resolves the EUR conversion rate for a currency on a date.
//
// EUR always resolves to 1. Otherwise the exact-date row wins when it carries a
// finite rate for the currency; failing that, the most recent earlier date with
// a finite rate is used, then the most recent date overall, and finally 1
// (treat as already EUR, an explicit degradation rather than a failure).
func (t *Table) Rate(date time.Time, currency string) float64 {
	if currency == "EUR" {
		return 1
	}

	formatted := date.Format(dateFormat)
	cacheKey := fmt.Sprintf("rate-%s-%s", currency, formatted)
	if cached, found := t.lookupCache.Get(cacheKey); found {
		return cached.(float64)
	}

	rate := t.resolve(formatted, currency)
	t.lookupCache.Set(cacheKey, rate, cache.DefaultExpiration)
	return rate
}

func (t *Table) resolve(formatted, currency string) float64 {
	// Exact-date row first. The table is typically sorted but order is not assumed.
	for _, row := range t.rows {
		if row.Date == formatted {
			if rate, ok := usableRate(row, currency); ok {
				return rate
			}
			break
		}
	}

	// Most recent date strictly before the lookup with a finite rate.
	if rate, ok := t.latestBefore(formatted, currency); ok {
		return rate
	}

	// Only later rows exist for this currency: take the most recent overall.
	if rate, ok := t.latestBefore("", currency); ok {
		return rate
	}

	logger.L.Debug("No usable conversion rate, defaulting to 1", "currency", currency, "date", formatted)
	return 1
}

// latestBefore finds the usable rate with the lexicographically greatest date
// strictly before the bound. An empty bound means no upper bound.
func (t *Table) latestBefore(bound, currency string) (float64, bool) {
	var bestDate string
	var bestRate float64
	for _, row := range t.rows {
		if bound != "" && row.Date >= bound {
			continue
		}
		rate, ok := usableRate(row, currency)
		if !ok {
			continue
		}
		if bestDate == "" || row.Date > bestDate {
			bestDate = row.Date
			bestRate = rate
		}
	}
	return bestRate, bestDate != ""
}

func usableRate(row models.ConversionRateRow, currency string) (float64, bool) {
	rate, ok := row.Rates[currency]
	if !ok || rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}
