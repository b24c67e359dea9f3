package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is the plain text of one page of a source document. Number is 1-based;
// 0 means the format has no page structure (plain text files).
type Page struct {
	Number int
	Text   string
}

// ExtractText converts a raw corpus document into per-page plain text.
// PDFs are read page by page so chunks can carry page references; .txt and
// .md documents come back as a single unnumbered page.
func ExtractText(name string, r io.Reader) ([]Page, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extractPDF(name, r)
	case ".txt", ".md":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return []Page{{Number: 0, Text: string(data)}}, nil
	default:
		return nil, fmt.Errorf("unsupported document format: %s", name)
	}
}

// extractPDF extracts page texts from a PDF. The pdf library works with file
// paths, so the stream is spooled to a temp file first.
func extractPDF(name string, r io.Reader) ([]Page, error) {
	tmp, err := os.CreateTemp("", "corpus-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, r); err != nil {
		return nil, fmt.Errorf("failed to spool %s: %w", name, err)
	}

	f, rdr, err := pdf.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", name, err)
	}
	defer f.Close()

	var pages []Page
	for i := 1; i <= rdr.NumPage(); i++ {
		page := rdr.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		pages = append(pages, Page{Number: i, Text: text})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no text extracted from %s", name)
	}

	return pages, nil
}
