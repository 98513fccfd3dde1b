package songwriter

import "strings"

type occasionStyle struct {
	keywords []string
	style    InferredStyle
}

var occasionStyles = []occasionStyle{
	{
		keywords: []string{"birthday"},
		style: InferredStyle{
			Genres:               []string{"Pop", "R&B/Soul"},
			Mood:                 "celebratory",
			SuggestedInstruments: []string{"Piano", "Drums", "Bass", "Synthesizer"},
			TempoHint:            TempoUpbeat,
			StyleKeywords:        []string{"upbeat", "joyful", "celebratory", "feel-good"},
		},
	},
	{
		keywords: []string{"wedding", "anniversary"},
		style: InferredStyle{
			Genres:               []string{"Pop", "R&B/Soul"},
			Mood:                 "romantic",
			SuggestedInstruments: []string{"Piano", "Strings", "Acoustic Guitar"},
			TempoHint:            TempoSlow,
			StyleKeywords:        []string{"romantic", "heartfelt", "intimate", "timeless"},
		},
	},
	{
		keywords: []string{"retirement", "farewell"},
		style: InferredStyle{
			Genres:               []string{"Folk/Acoustic", "Rock"},
			Mood:                 "nostalgic",
			SuggestedInstruments: []string{"Acoustic Guitar", "Piano", "Harmonica"},
			TempoHint:            TempoMedium,
			StyleKeywords:        []string{"reflective", "nostalgic", "warm", "sincere"},
		},
	},
	{
		keywords: []string{"graduation"},
		style: InferredStyle{
			Genres:               []string{"Pop", "Indie"},
			Mood:                 "hopeful",
			SuggestedInstruments: []string{"Piano", "Drums", "Electric Guitar"},
			TempoHint:            TempoUpbeat,
			StyleKeywords:        []string{"uplifting", "inspiring", "hopeful", "energetic"},
		},
	},
	{
		keywords: []string{"memorial", "tribute", "remembrance"},
		style: InferredStyle{
			Genres:               []string{"Folk/Acoustic", "Classical"},
			Mood:                 "tender",
			SuggestedInstruments: []string{"Piano", "Strings", "Acoustic Guitar"},
			TempoHint:            TempoSlow,
			StyleKeywords:        []string{"gentle", "tender", "emotional", "reverent"},
		},
	},
}

var genericStyle = InferredStyle{
	Genres:               []string{"Pop", "Folk/Acoustic"},
	Mood:                 "heartfelt",
	SuggestedInstruments: []string{"Piano", "Acoustic Guitar", "Strings"},
	TempoHint:            TempoMedium,
	StyleKeywords:        []string{"warm", "personal", "heartfelt", "sincere"},
}

// DefaultStyle picks a style bundle from keywords in the occasion. It backs
// "surprise" mode and any inference failure.
func DefaultStyle(occasion string) InferredStyle {
	lower := strings.ToLower(occasion)
	for _, o := range occasionStyles {
		for _, kw := range o.keywords {
			if strings.Contains(lower, kw) {
				return o.style.clone()
			}
		}
	}
	return genericStyle.clone()
}

func (s InferredStyle) clone() InferredStyle {
	return InferredStyle{
		Genres:               append([]string(nil), s.Genres...),
		Mood:                 s.Mood,
		SuggestedInstruments: append([]string(nil), s.SuggestedInstruments...),
		TempoHint:            s.TempoHint,
		StyleKeywords:        append([]string(nil), s.StyleKeywords...),
	}
}
