package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(sheet Sheet) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Title")
	titlePar.AddRun().AddText(sheet.Title)

	if sheet.StylePrompt != "" {
		stylePar := doc.AddParagraph()
		styleRun := stylePar.AddRun()
		styleRun.Properties().SetItalic(true)
		styleRun.AddText(sheet.StylePrompt)
	}

	for _, s := range splitSections(sheet.Lyrics) {
		if s.Name != "" {
			headPar := doc.AddParagraph()
			headPar.SetStyle("Heading2")
			headPar.AddRun().AddText(s.Name)
		}

		bodyRun := doc.AddParagraph().AddRun()
		for i, line := range s.Lines {
			if i > 0 {
				bodyRun.AddBreak()
			}
			bodyRun.AddText(line)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
