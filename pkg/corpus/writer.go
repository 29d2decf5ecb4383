package corpus

import (
	"io"
	"strings"
)

// needsQuotes reports whether field must be quoted under minimal quoting:
// only the delimiter, the quote character or a line break force it.
func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}

// WriteRecord writes record as one comma-delimited line with minimal
// quoting. Leading or trailing spaces are written as-is.
func WriteRecord(w io.StringWriter, record []string) error {
	var b strings.Builder
	for i, field := range record {
		if i > 0 {
			b.WriteByte(',')
		}
		if !needsQuotes(field) {
			b.WriteString(field)
			continue
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := w.WriteString(b.String())
	return err
}
