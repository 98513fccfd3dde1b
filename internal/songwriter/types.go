package songwriter

// Hard ceilings of the music provider for the two generated strings.
const (
	MaxStylePromptLen = 300
	MaxLyricsLen      = 3000
)

type Tempo string

const (
	TempoSlow   Tempo = "slow"
	TempoMedium Tempo = "medium"
	TempoUpbeat Tempo = "upbeat"
)

// Valid reports whether t is one of the known tempo values.
func (t Tempo) Valid() bool {
	switch t {
	case TempoSlow, TempoMedium, TempoUpbeat:
		return true
	default:
		return false
	}
}

type VocalStyle string

const (
	VocalMale   VocalStyle = "male"
	VocalFemale VocalStyle = "female"
	VocalChoir  VocalStyle = "choir"
)

func (v VocalStyle) Valid() bool {
	switch v {
	case VocalMale, VocalFemale, VocalChoir:
		return true
	default:
		return false
	}
}

// AnswerSet is a single contributor submission: free-text answers keyed by
// question id plus optional lines the curator wants included.
type AnswerSet struct {
	Answers          map[string]any `json:"answers"`
	MustIncludeLines []string       `json:"must_include_lines,omitempty"`
}

// Constraints are project level curation lists. TopicsToAvoid is carried as a
// hint only and is never enforced against the generated text.
type Constraints struct {
	MustIncludeItems []string `json:"must_include_items"`
	TopicsToAvoid    []string `json:"topics_to_avoid"`
}

// InferredStyle is the AI-suggested music bundle. When present it takes
// precedence over the manually selected genres and instruments.
type InferredStyle struct {
	Genres               []string `json:"genres"`
	Mood                 string   `json:"mood"`
	SuggestedInstruments []string `json:"suggested_instruments"`
	TempoHint            Tempo    `json:"tempo_hint"`
	StyleKeywords        []string `json:"style_keywords"`
}

type MusicPreferences struct {
	Genres      []string       `json:"genres"`
	Tempo       Tempo          `json:"tempo"`
	VocalStyle  VocalStyle     `json:"vocal_style"`
	Instruments []string       `json:"instruments"`
	Inferred    *InferredStyle `json:"inferred_style,omitempty"`
}

// Content holds the answer values partitioned into lyric buckets.
type Content struct {
	Memories    []string
	Traits      []string
	Quirks      []string
	Wishes      []string
	MustInclude []string
}

// Song is the pair of strings forwarded verbatim to the generation provider.
type Song struct {
	StylePrompt string `json:"style_prompt"`
	Lyrics      string `json:"lyrics"`
}
