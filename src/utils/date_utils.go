// backend/src/utils/date_utils.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

// statementDateLayouts are the date shapes observed in Revolut Flexible Cash
// Funds exports. The export is locale-dependent, so several layouts are tried
// in order.
var statementDateLayouts = []string{
	"2006-01-02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02/01/2006",
	"2.1.2006",
	time.RFC3339,
}

// ParseStatementDate parses a statement date string, trying each known layout.
func ParseStatementDate(dateStr string) (time.Time, error) {
	trimmed := strings.TrimSpace(dateStr)
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}
