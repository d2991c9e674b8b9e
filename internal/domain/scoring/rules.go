package scoring

const (
	DefaultExactScorePoints = 8
	DefaultDifferencePoints = 5
	DefaultWinnerPoints     = 3
)

// Rules holds the per-pool point values for each prediction tier.
type Rules struct {
	ExactScorePoints int
	DifferencePoints int
	WinnerPoints     int
}

func DefaultRules() Rules {
	return Rules{
		ExactScorePoints: DefaultExactScorePoints,
		DifferencePoints: DefaultDifferencePoints,
		WinnerPoints:     DefaultWinnerPoints,
	}
}

// Normalize replaces missing or non-positive point values with the
// documented defaults instead of failing.
func (r Rules) Normalize() Rules {
	out := r
	if out.ExactScorePoints <= 0 {
		out.ExactScorePoints = DefaultExactScorePoints
	}
	if out.DifferencePoints <= 0 {
		out.DifferencePoints = DefaultDifferencePoints
	}
	if out.WinnerPoints <= 0 {
		out.WinnerPoints = DefaultWinnerPoints
	}
	return out
}
