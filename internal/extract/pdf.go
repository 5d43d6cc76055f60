package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrMalformedPDF wraps parser panics raised by corrupt object tables.
var ErrMalformedPDF = errors.New("malformed PDF")

type pdfReader struct{}

// NewPDFReader returns a PageReader backed by a pure-Go PDF parser.
func NewPDFReader() PageReader {
	return pdfReader{}
}

// Pages returns the plain text of every page in order. Pages without content
// yield an empty string.
func (pdfReader) Pages(ctx context.Context, path string) (pages []string, err error) {
	// The parser panics on broken cross-references instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := r.NumPage()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			out = append(out, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}
