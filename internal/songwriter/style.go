package songwriter

import "strings"

const (
	maxStyleKeywords = 3
	avoidClause      = "avoid abrupt ending, avoid mumbling, clear pronunciation"
)

var tempoClauses = map[Tempo]string{
	TempoSlow:   "60-80 BPM, spacious ballad",
	TempoMedium: "90-110 BPM, steady groove",
	TempoUpbeat: "120-140 BPM, driving energy",
}

var vocalClauses = map[VocalStyle]string{
	VocalMale:   "warm male vocals",
	VocalFemale: "clear female vocals",
	VocalChoir:  "layered choir harmonies",
}

// BuildStylePrompt renders the sound description for the generation model.
// Clause order is fixed: the model weights leading terms more heavily.
// The result never exceeds MaxStylePromptLen characters.
func BuildStylePrompt(music MusicPreferences, tone Tone) string {
	tone = tone.Clamp()
	parts := make([]string, 0, 12)

	genres, instruments := music.Genres, music.Instruments
	if music.Inferred != nil {
		genres = music.Inferred.Genres
		instruments = music.Inferred.SuggestedInstruments
	}

	if len(genres) > 0 {
		parts = append(parts, strings.Join(genres, ", "))
	}

	if inf := music.Inferred; inf != nil {
		if inf.Mood != "" {
			parts = append(parts, inf.Mood+" mood")
		}
		if len(inf.StyleKeywords) > 0 {
			keywords := inf.StyleKeywords
			if len(keywords) > maxStyleKeywords {
				keywords = keywords[:maxStyleKeywords]
			}
			parts = append(parts, strings.Join(keywords, ", "))
		}
	}

	if clause, ok := tempoClauses[resolveTempo(music)]; ok {
		parts = append(parts, clause)
	}

	switch {
	case tone.IsMinimal():
		parts = append(parts, "minimal soft drums, subtle bass")
	case tone.IntimateAnthem >= 7:
		parts = append(parts, "powerful drums, driving bass, stadium sound")
	default:
		parts = append(parts, "natural balanced drum kit, warm bass")
	}

	if len(instruments) > 0 {
		parts = append(parts, "featuring "+strings.Join(instruments, ", "))
	}

	if clause, ok := vocalClauses[music.VocalStyle]; ok {
		parts = append(parts, clause)
	}

	switch {
	case tone.HeartfeltFunny <= 3:
		parts = append(parts, "sincere heartfelt delivery")
	case tone.HeartfeltFunny >= 7:
		parts = append(parts, "playful delivery, lighthearted")
	}

	switch {
	case tone.IntimateAnthem <= 3:
		parts = append(parts, "intimate acoustic feel")
	case tone.IntimateAnthem >= 7:
		parts = append(parts, "anthemic build, powerful dynamics")
	}

	if tone.IsMinimal() {
		parts = append(parts, "2:30-3:30 duration, sparse arrangement")
	} else {
		parts = append(parts, "2:30-3:30 duration, full arrangement")
	}

	parts = append(parts, avoidClause)

	return Truncate(strings.Join(parts, ", "), MaxStylePromptLen)
}

// resolveTempo prefers the manual selection, then the inferred hint.
func resolveTempo(music MusicPreferences) Tempo {
	if music.Tempo != "" {
		return music.Tempo
	}
	if music.Inferred != nil && music.Inferred.TempoHint != "" {
		return music.Inferred.TempoHint
	}
	return TempoMedium
}
