package render

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// LetterheadReadError is returned when a template's letterhead cannot be used as a page background.
type LetterheadReadError struct {
	Err error
}

func (e *LetterheadReadError) Error() string {
	return fmt.Sprintf("unreadable letterhead: %v", e.Err)
}

func (e *LetterheadReadError) Unwrap() error {
	return e.Err
}

const letterheadImage = "letterhead"

// CheckLetterhead reports whether data can be used as a letterhead,
// without producing a document.
func CheckLetterhead(data []byte) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	_, err := installLetterhead(pdf, data)
	return err
}

// installLetterhead prepares data (a PDF whose first page is used, or a PNG,
// JPEG or GIF image) and returns a function drawing it over the whole page.
// Empty data installs nothing.
func installLetterhead(pdf *gofpdf.Fpdf, data []byte) (draw func(), err error) {
	if len(data) == 0 {
		return nil, nil
	}
	pageW, pageH := pdf.GetPageSize()

	if bytes.HasPrefix(data, []byte("%PDF")) {
		// gofpdi panics on malformed input
		defer func() {
			if p := recover(); p != nil {
				draw, err = nil, &LetterheadReadError{Err: fmt.Errorf("invalid PDF: %v", p)}
			}
		}()
		importer := gofpdi.NewImporter()
		rs := io.ReadSeeker(bytes.NewReader(data))
		tpl := importer.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
		if err := pdf.Error(); err != nil {
			return nil, &LetterheadReadError{Err: err}
		}
		return func() {
			importer.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)
		}, nil
	}

	var imageType string
	switch ct := http.DetectContentType(data); ct {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return nil, &LetterheadReadError{Err: fmt.Errorf("unsupported content type %s", ct)}
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(letterheadImage, opts, bytes.NewReader(data))
	if err := pdf.Error(); err != nil {
		return nil, &LetterheadReadError{Err: err}
	}
	return func() {
		pdf.ImageOptions(letterheadImage, 0, 0, pageW, pageH, false, opts, 0, "")
	}, nil
}
