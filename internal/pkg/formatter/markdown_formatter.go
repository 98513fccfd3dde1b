package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(sheet Sheet) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", sheet.Title)
	if sheet.StylePrompt != "" {
		fmt.Fprintf(&buf, "> %s\n\n", sheet.StylePrompt)
	}

	for _, s := range splitSections(sheet.Lyrics) {
		if s.Name != "" {
			fmt.Fprintf(&buf, "## %s\n\n", s.Name)
		}
		for _, line := range s.Lines {
			// two trailing spaces keep the line break
			fmt.Fprintf(&buf, "%s  \n", line)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
