package docsync

import (
	"fmt"
	"strings"
	"time"
)

const nameHostileChars = ` /\:*?"<>|`

// SanitizeName replaces characters that are hostile in file and folder
// names with underscores: path separators, colon, wildcards, quotes,
// angle brackets, pipe, spaces and control characters. An empty result
// falls back to a literal "unknown".
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(nameHostileChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// PDFFileName builds the deterministic destination name for a
// contract's generated PDF: {customer}-{yyyymmdd}.pdf, dated from the
// contract's creation time or, when that is unset, from now.
func PDFFileName(customerName string, createdAt, now time.Time) string {
	d := createdAt
	if d.IsZero() {
		d = now
	}
	return fmt.Sprintf("%s-%s.pdf", SanitizeName(customerName), d.UTC().Format("20060102"))
}
