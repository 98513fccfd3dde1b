package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the gofpdf family name of the UTF-8 font
	pdfFontName = "DejaVuSans"

	// Docker images copy fonts next to the binary
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source layout, for runs from the repo root
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, p := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(sheet Sheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(sheet.Title, true)
	pdf.AddPage()

	fontName := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		pdf.AddUTF8Font(pdfFontName, "I", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.MultiCell(0, 10, tr(sheet.Title), "", "", false)
	pdf.Ln(2)

	if sheet.StylePrompt != "" {
		pdf.SetFont(fontName, "I", 9)
		_, h := pdf.GetFontSize()
		pdf.MultiCell(0, h*1.4, tr(sheet.StylePrompt), "", "", false)
		pdf.Ln(4)
	}

	for _, s := range splitSections(sheet.Lyrics) {
		if s.Name != "" {
			pdf.SetFont(fontName, "B", 12)
			pdf.Cell(0, 8, tr(s.Name))
			pdf.Ln(8)
		}

		pdf.SetFont(fontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		for _, line := range s.Lines {
			pdf.MultiCell(0, lineHeight*1.5, tr(line), "", "", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
