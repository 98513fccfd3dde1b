package songwriter

import "strings"

// Per-slot ceilings for lines lifted from contributor answers.
const (
	leadLineLen = 80
	lineLen     = 60
)

// Section markers in song order.
const (
	SectionIntro        = "[Intro]"
	SectionVerse1       = "[Verse 1]"
	SectionPreChorus    = "[Pre-Chorus]"
	SectionChorus       = "[Chorus]"
	SectionVerse2       = "[Verse 2]"
	SectionBridge       = "[Bridge]"
	SectionInstrumental = "[Instrumental]"
	SectionOutro        = "[Outro]"
)

// SongStructure is the fixed marker sequence every synthesized song follows.
var SongStructure = []string{
	SectionIntro,
	SectionVerse1,
	SectionPreChorus,
	SectionChorus,
	SectionVerse2,
	SectionPreChorus,
	SectionChorus,
	SectionBridge,
	SectionInstrumental,
	SectionChorus,
	SectionChorus,
	SectionOutro,
}

type sheet struct {
	b        strings.Builder
	sections int
}

func (s *sheet) section(marker string) {
	if s.sections > 0 {
		s.b.WriteString("\n")
	}
	s.sections++
	s.b.WriteString(marker)
	s.b.WriteString("\n")
}

func (s *sheet) line(text string) {
	s.b.WriteString(text)
	s.b.WriteString("\n")
}

// slot writes items[i] cleaned to maxLen, if it exists.
func (s *sheet) slot(items []string, i, maxLen int) bool {
	if i >= len(items) {
		return false
	}
	s.line(CleanLine(items[i], maxLen))
	return true
}

// SynthesizeLyrics assembles the full template song from content. The
// structure is always complete; empty buckets only drop their own lines.
// The tone sliders only steer the AI generator and never change this
// layout. The result never exceeds MaxLyricsLen characters.
func SynthesizeLyrics(content Content, honoree, occasion string, _ Tone) string {
	var s sheet

	s.section(SectionIntro)
	s.line("La la la, la la la")
	s.line("Here we go")

	s.section(SectionVerse1)
	s.slot(content.Memories, 0, leadLineLen)
	s.slot(content.Traits, 0, lineLen)
	s.slot(content.Quirks, 0, lineLen)
	s.line("Every moment with you is a treasure")
	s.line("Every memory we hold so dear")

	preChorus(&s)
	chorus(&s, honoree, occasion)

	s.section(SectionVerse2)
	if !s.slot(content.Memories, 1, leadLineLen) {
		s.slot(content.Memories, 0, lineLen)
	}
	if !s.slot(content.Traits, 1, lineLen) {
		s.slot(content.Traits, 0, lineLen)
	}
	s.slot(content.Quirks, 1, lineLen)
	s.slot(content.MustInclude, 0, lineLen)
	s.line("You light up every room you enter")

	preChorus(&s)
	chorus(&s, honoree, occasion)

	s.section(SectionBridge)
	s.slot(content.Wishes, 0, leadLineLen)
	s.slot(content.Wishes, 1, lineLen)
	s.line("Here's to all the years ahead")
	s.line("Here's to all the love we share")

	s.section(SectionInstrumental)
	s.line("Oh oh oh, oh oh oh")
	s.line("Yeah yeah yeah")

	chorus(&s, honoree, occasion)

	s.section(SectionChorus)
	s.line(honoree + ", this one's for you")
	s.line("This one's for you")
	s.line("On your " + occasion)
	s.line("We celebrate everything you do")
	s.line("Everything you do")
	s.line(honoree + ", we love you")
	s.line("We love you so much")

	s.section(SectionOutro)
	s.line(honoree)
	s.line("We love you")
	s.line(honoree)
	s.line("La la la, la la la")

	return Truncate(s.b.String(), MaxLyricsLen)
}

func preChorus(s *sheet) {
	s.section(SectionPreChorus)
	s.line("And now we gather here today")
	s.line("To show you in every way")
}

func chorus(s *sheet, honoree, occasion string) {
	s.section(SectionChorus)
	s.line(honoree + ", this one's for you")
	s.line("On your " + occasion)
	s.line("We celebrate everything you do")
	s.line(honoree + ", we love you")
}
