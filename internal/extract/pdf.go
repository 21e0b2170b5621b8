package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"focusbot/internal/domain"
)

func init() {
	// pdfcpu otherwise writes a config directory under the user's home.
	api.DisableConfigDir()
}

// extractPDF returns one string per source page. pdfcpu is the authority on
// the page count; ledongthuc/pdf supplies the text. A page whose text cannot
// be extracted becomes "".
func extractPDF(ctx context.Context, data []byte) ([]string, error) {
	count, countErr := countPDFPages(data)

	reader, readErr := openPDF(data)
	if readErr != nil {
		if countErr != nil || count == 0 {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, readErr)
		}
		log.Printf("extract.extractPDF: text reader failed (%v); returning %d empty pages", readErr, count)
		return make([]string, count), nil
	}

	textPages := reader.NumPage()
	if countErr != nil {
		log.Printf("extract.extractPDF: page count unavailable (%v); using text reader count %d", countErr, textPages)
		count = textPages
	} else if count != textPages {
		log.Printf("extract.extractPDF: page count mismatch (pdfcpu=%d, text=%d)", count, textPages)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: pdf has no pages", domain.ErrUnreadableDocument)
	}

	pages := make([]string, count)
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i <= textPages {
			pages[i-1] = pageText(reader, i)
		}
	}
	return pages, nil
}

func countPDFPages(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(data), conf)
}

func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func pageText(r *pdf.Reader, num int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("extract.pageText: page %d: %v", num, rec)
			text = ""
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		log.Printf("extract.pageText: page %d: %v", num, err)
		return ""
	}
	return text
}
