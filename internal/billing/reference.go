package billing

import (
	"fmt"
	"time"

	"billdocs/internal/model"
)

// PrefixFor returns the display-reference prefix of a document type.
func PrefixFor(t model.DocumentType) string {
	switch t {
	case model.TypeQuote:
		return "D"
	case model.TypeInvoice:
		return "F"
	default:
		return "DOC"
	}
}

// FormatReference builds "<PREFIX>-<YEAR>-<SEQ>" where SEQ is existingCount+1
// padded to three digits. Counts of 999 and above simply widen the sequence.
func FormatReference(t model.DocumentType, year, existingCount int) string {
	return fmt.Sprintf("%s-%d-%03d", PrefixFor(t), year, existingCount+1)
}

// StartOfYear returns midnight on January 1st of now's year, in now's location.
func StartOfYear(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// Sources of the yearly sequence number.
const (
	// StrategyCount derives the sequence from the number of documents created this
	// year. Two concurrent creations can compute the same reference.
	StrategyCount = "count"
	// StrategyCounter increments a per-year counter row atomically.
	StrategyCounter = "counter"
)

// ValidStrategy reports whether s names a known sequence source.
func ValidStrategy(s string) bool {
	return s == StrategyCount || s == StrategyCounter
}
