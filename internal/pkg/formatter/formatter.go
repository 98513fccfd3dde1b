package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/songsmith/internal/entity"
)

// Sheet is a printable lyric sheet
type Sheet struct {
	Title       string
	StylePrompt string
	Lyrics      string
}

type Formatter interface {
	Format(sheet Sheet) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format: %s", entity.ErrInvalidFormat, format)
	}
}

// section is one bracketed block of a lyric sheet
type section struct {
	Name  string
	Lines []string
}

// splitSections groups lyric lines under their [Section] markers.
// Lines before the first marker land in a section with an empty name.
func splitSections(lyrics string) []section {
	var out []section
	for _, line := range strings.Split(strings.TrimRight(lyrics, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			out = append(out, section{Name: strings.Trim(trimmed, "[]")})
			continue
		}
		if trimmed == "" {
			continue
		}
		if len(out) == 0 {
			out = append(out, section{})
		}
		out[len(out)-1].Lines = append(out[len(out)-1].Lines, trimmed)
	}
	return out
}
