package songwriter

// Request is everything needed to render one song.
type Request struct {
	Honoree     string
	Occasion    string
	Submissions []AnswerSet
	Constraints Constraints
	Tone        Tone
	Music       MusicPreferences
}

// Compose extracts content once and renders both provider strings.
// Constraints.TopicsToAvoid is not applied to the output.
func Compose(req Request) Song {
	content := Extract(req.Submissions, req.Constraints.MustIncludeItems)
	return Song{
		StylePrompt: BuildStylePrompt(req.Music, req.Tone),
		Lyrics:      SynthesizeLyrics(content, req.Honoree, req.Occasion, req.Tone),
	}
}
