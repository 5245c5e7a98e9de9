package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result is the extractor output consumed by the ingestion pipeline.
type Result struct {
	Text      string
	PageCount int
	Degraded  bool
}

// Extract pulls plain text and a page count from an in-memory PDF payload
// using github.com/ledongthuc/pdf. It never fails: any parser error (or
// empty/unparsable input) degrades to a deterministic placeholder naming the
// original file, with a page count of 1.
func Extract(data []byte, fileName string) Result {
	text, pages, err := extractPDF(data)
	if err != nil || strings.TrimSpace(text) == "" {
		return Result{
			Text:      Placeholder(fileName),
			PageCount: 1,
			Degraded:  true,
		}
	}
	return Result{Text: text, PageCount: pages}
}

// Placeholder is the degrade-to-placeholder text for unparsable uploads.
func Placeholder(fileName string) string {
	return fmt.Sprintf("Text could not be extracted from %s. The original PDF was stored without readable content.", fileName)
}

func extractPDF(data []byte) (text string, pages int, err error) {
	// The parser panics on some malformed files; the contract here is
	// degrade, never fail, so recover into an error.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parse panic: %v", rec)
		}
	}()

	if len(data) == 0 {
		return "", 0, fmt.Errorf("empty pdf data")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", 0, err
	}

	pages = pdfReader.NumPage()
	if pages < 1 {
		pages = 1
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", 0, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, err
	}
	return buf.String(), pages, nil
}
