package songwriter

import "strings"

// Bucket names the part of the song an answer feeds.
type Bucket int

const (
	BucketMemories Bucket = iota
	BucketTraits
	BucketQuirks
	BucketWishes
)

// QuestionMapping binds one question id to its bucket.
type QuestionMapping struct {
	QuestionID string
	Bucket     Bucket
}

// Vocabulary is scanned in order for every answer set, which fixes the
// order of values inside each bucket.
type Vocabulary []QuestionMapping

// DefaultVocabulary covers the quick (admire/memory/quirk/wish) and deep
// question sets. current_chapter is asked but feeds no bucket.
var DefaultVocabulary = Vocabulary{
	{QuestionID: "admire", Bucket: BucketTraits},
	{QuestionID: "memory", Bucket: BucketMemories},
	{QuestionID: "quirk", Bucket: BucketQuirks},
	{QuestionID: "wish", Bucket: BucketWishes},
	{QuestionID: "memory_funny", Bucket: BucketMemories},
	{QuestionID: "memory_tender", Bucket: BucketMemories},
	{QuestionID: "memory_defining", Bucket: BucketMemories},
	{QuestionID: "how_they_show_love", Bucket: BucketTraits},
	{QuestionID: "what_matters_most", Bucket: BucketTraits},
}

type Extractor struct {
	vocab Vocabulary
}

func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract partitions answers with the default vocabulary.
func Extract(sets []AnswerSet, mustInclude []string) Content {
	return NewExtractor(DefaultVocabulary).Extract(sets, mustInclude)
}

// Extract walks sets in input order and appends every non-blank string
// answer to its bucket. Unknown ids and non-string values are skipped.
// The must-include list is the caller's items followed by each set's
// MustIncludeLines.
func (e *Extractor) Extract(sets []AnswerSet, mustInclude []string) Content {
	content := Content{
		MustInclude: append([]string(nil), mustInclude...),
	}

	for _, set := range sets {
		for _, q := range e.vocab {
			value, ok := answerText(set.Answers, q.QuestionID)
			if !ok {
				continue
			}
			content.add(q.Bucket, value)
		}
		content.MustInclude = append(content.MustInclude, set.MustIncludeLines...)
	}

	return content
}

func answerText(answers map[string]any, id string) (string, bool) {
	raw, ok := answers[id]
	if !ok {
		return "", false
	}
	text, ok := raw.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func (c *Content) add(b Bucket, value string) {
	switch b {
	case BucketMemories:
		c.Memories = append(c.Memories, value)
	case BucketTraits:
		c.Traits = append(c.Traits, value)
	case BucketQuirks:
		c.Quirks = append(c.Quirks, value)
	case BucketWishes:
		c.Wishes = append(c.Wishes, value)
	}
}
