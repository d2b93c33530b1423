package docsync

import (
	"bytes"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/irwhub/employee-contract-app/internal/apperr"
)

// MergeFunc combines PDFs, in input order, into one document.
type MergeFunc func(pdfs [][]byte) ([]byte, error)

// MergePDFs concatenates the pages of the given PDFs in input order.
// No content de-duplication happens; page order is preserved.
func MergePDFs(pdfs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, 0, len(pdfs))
	for _, pdf := range pdfs {
		readers = append(readers, bytes.NewReader(pdf))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, apperr.Upstreamf("pdf_merge", err, "merging %d documents failed", len(pdfs))
	}
	return out.Bytes(), nil
}
