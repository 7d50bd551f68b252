// Package export renders business lists as downloadable CSV or JSON.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"business_finder_backend/internal/businesses/domain"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"

	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoBusinesses      = errors.New("businesses list is required")
)

var csvHeader = []string{"Name", "Address", "Phone", "Website", "Rating", "Total Ratings", "Types"}

// NormalizeFormat lowercases format and maps "" to json.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatJSON
	}
	return format
}

// Export serializes businesses in the requested format. A nil slice is a
// malformed request; an empty one exports a header-only CSV or "[]".
func Export(businesses []domain.Business, format string) ([]byte, string, error) {
	if businesses == nil {
		return nil, "", ErrNoBusinesses
	}

	switch NormalizeFormat(format) {
	case FormatJSON:
		data, err := json.Marshal(businesses)
		if err != nil {
			return nil, "", fmt.Errorf("encode businesses: %w", err)
		}
		return data, ContentTypeJSON, nil
	case FormatCSV:
		return []byte(toCSV(businesses)), ContentTypeCSV, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FileName is the attachment name for a normalized format.
func FileName(format string) string {
	return "businesses." + NormalizeFormat(format)
}

func toCSV(businesses []domain.Business) string {
	var sb strings.Builder
	writeRow(&sb, csvHeader)
	for _, b := range businesses {
		sb.WriteByte('\n')
		writeRow(&sb, []string{
			b.Name,
			b.Address,
			orDefault(b.Phone, "N/A"),
			orDefault(b.Website, "No website"),
			formatRating(b.Rating),
			formatTotal(b.TotalRatings),
			strings.Join(b.Types, ", "),
		})
	}
	return sb.String()
}

// writeRow quotes every field, doubling embedded quotes.
func writeRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
}

func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

// A zero rating means "not rated" to the directory.
func formatRating(r *float64) string {
	if r == nil || *r == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func formatTotal(n *int) string {
	if n == nil {
		return "0"
	}
	return strconv.Itoa(*n)
}
