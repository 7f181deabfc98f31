package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor pulls page text out of PDF files with pdfcpu.
type PDFExtractor struct {
	conf *model.Configuration
}

// NewPDFExtractor creates a PDF extractor with the default configuration.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{conf: model.NewDefaultConfiguration()}
}

// ExtractText returns the concatenated page text of one PDF. pdfcpu writes
// per-page content files into a scratch directory; they are read back in page
// order and joined.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}

	outDir, err := os.MkdirTemp("", "trip-engine-pdf-")
	if err != nil {
		return "", fmt.Errorf("scratch dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, e.conf); err != nil {
		return "", fmt.Errorf("extract content %s: %w", path, err)
	}

	texts := make(map[int]string, pdfCtx.PageCount)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("read scratch dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var page int
		name := entry.Name()
		if _, err := fmt.Sscanf(name, "page_%d", &page); err != nil {
			if _, err := fmt.Sscanf(name, "Content_page_%d", &page); err != nil {
				continue
			}
		}
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			continue
		}
		texts[page] = string(data)
	}

	pages := make([]int, 0, len(texts))
	for p := range texts {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(texts[p])
	}

	return b.String(), nil
}

// ListPDFs returns the PDF files directly inside dir, sorted by name. A
// missing directory is treated as empty.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pdf dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
