package fantasy

// Weights stores the signed per-event multipliers of the fantasy formula.
// They are a fixed policy constant, not derived from data.
type Weights struct {
	Kill       float64
	Death      float64
	Assist     float64
	FirstKill  float64
	FirstDeath float64
}

func DefaultWeights() Weights {
	return Weights{
		Kill:       1.0,
		Death:      -0.5,
		Assist:     0.25,
		FirstKill:  0.5,
		FirstDeath: -0.5,
	}
}

// Score computes the fantasy point value for one match line. Deterministic,
// no rounding applied.
func (w Weights) Score(kills, deaths, assists, firstKills, firstDeaths int) float64 {
	return float64(kills)*w.Kill +
		float64(deaths)*w.Death +
		float64(assists)*w.Assist +
		float64(firstKills)*w.FirstKill +
		float64(firstDeaths)*w.FirstDeath
}
