package engine

import "math/rand"

// Margin distribution and loser-points range used to sample a remaining
// game's score, kept as package constants; a future RunConfig field could
// override them for experimentation.
var (
	defaultMargins     = [4]int{3, 7, 10, 14}
	defaultMarginProbs = [4]float64{0.4, 0.3, 0.2, 0.1}
	defaultLoserMin    = 10
	defaultLoserMax    = 30
)

// sampledOutcome is one simulated remaining-pair result, always a win for
// one side (margin >= 3 guarantees no tie is ever produced).
type sampledOutcome struct {
	aWins          bool
	pdA            int // signed point differential from a's perspective
	pointsForA     int
	pointsAgainstA int
}

// sampleGame draws a winner, margin, and loser score for one remaining pair,
// picking the margin band by walking rand.Float64() against cumulative
// probability thresholds.
func sampleGame(rng *rand.Rand) sampledOutcome {
	aWins := rng.Float64() < 0.5

	margin := defaultMargins[len(defaultMargins)-1]
	r := rng.Float64()
	cum := 0.0
	for i, p := range defaultMarginProbs {
		cum += p
		if r < cum {
			margin = defaultMargins[i]
			break
		}
	}

	loser := defaultLoserMin + rng.Intn(defaultLoserMax-defaultLoserMin+1)
	winner := loser + margin

	pointsForA, pointsAgainstA := loser, winner
	if aWins {
		pointsForA, pointsAgainstA = winner, loser
	}
	return sampledOutcome{
		aWins:          aWins,
		pdA:            pointsForA - pointsAgainstA,
		pointsForA:     pointsForA,
		pointsAgainstA: pointsAgainstA,
	}
}
