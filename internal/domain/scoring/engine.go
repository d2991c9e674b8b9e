package scoring

// Tier classifies how close a prediction came to the actual result.
type Tier string

const (
	TierExact      Tier = "exact"
	TierDifference Tier = "difference"
	TierWinner     Tier = "winner"
	TierNone       Tier = "none"
)

type Result struct {
	Points int
	Tier   Tier
}

type outcome int

const (
	outcomeDraw outcome = iota
	outcomeHome
	outcomeAway
)

// Score maps a finished match result and a prediction to awarded points.
// Tiers are mutually exclusive and checked in priority order: exact score,
// then goal difference, then winner. The function is pure; both the
// publication fan-out and the per-participant detail view rely on it
// yielding identical output for identical input.
func Score(actualHome, actualAway, predictedHome, predictedAway int, rules Rules) Result {
	rules = rules.Normalize()

	if predictedHome == actualHome && predictedAway == actualAway {
		return Result{Points: rules.ExactScorePoints, Tier: TierExact}
	}
	if predictedHome-predictedAway == actualHome-actualAway {
		return Result{Points: rules.DifferencePoints, Tier: TierDifference}
	}
	if classify(predictedHome, predictedAway) == classify(actualHome, actualAway) {
		return Result{Points: rules.WinnerPoints, Tier: TierWinner}
	}

	return Result{Points: 0, Tier: TierNone}
}

func classify(home, away int) outcome {
	switch {
	case home > away:
		return outcomeHome
	case home < away:
		return outcomeAway
	default:
		return outcomeDraw
	}
}
