package songwriter

const (
	minTone = 1
	maxTone = 10
)

// Tone holds the three 1-10 sliders:
// HeartfeltFunny (1 heartfelt, 10 funny), IntimateAnthem (1 intimate,
// 10 anthemic) and MinimalLyrical (1 minimal, 10 dense).
type Tone struct {
	HeartfeltFunny int `json:"heartfelt_funny"`
	IntimateAnthem int `json:"intimate_anthem"`
	MinimalLyrical int `json:"minimal_lyrical"`
}

// Clamp returns a copy of t with every slider forced into [1,10].
func (t Tone) Clamp() Tone {
	return Tone{
		HeartfeltFunny: clampTone(t.HeartfeltFunny),
		IntimateAnthem: clampTone(t.IntimateAnthem),
		MinimalLyrical: clampTone(t.MinimalLyrical),
	}
}

// IsMinimal reports whether the density slider asks for a sparse arrangement.
func (t Tone) IsMinimal() bool {
	return t.MinimalLyrical <= 4
}

func clampTone(v int) int {
	if v < minTone {
		return minTone
	}
	if v > maxTone {
		return maxTone
	}
	return v
}
