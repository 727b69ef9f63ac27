// internal/leaderboard/policy.go
//
// Points policies. The formula applied to a win is a deployment choice,
// selected by name in configuration.

package leaderboard

// Policy converts a finished winning game into points.
type Policy interface {
	Points(maxAttempts, attemptsUsed int) float64
}

// DecayPolicy awards Base points minus Step for every pair of wrong
// guesses before the win, floored at zero.
type DecayPolicy struct {
	Base float64
	Step float64
}

func (p DecayPolicy) Points(maxAttempts, attemptsUsed int) float64 {
	wrong := attemptsUsed - 1
	if wrong < 0 {
		wrong = 0
	}
	pts := p.Base - p.Step*float64(wrong/2)
	if pts < 0 {
		return 0
	}
	return pts
}

// AttemptsPolicy awards PerAttempt points for each attempt left,
// counting the winning one: (maxAttempts - attemptsUsed + 1) * PerAttempt.
type AttemptsPolicy struct {
	PerAttempt float64
}

func (p AttemptsPolicy) Points(maxAttempts, attemptsUsed int) float64 {
	left := maxAttempts - attemptsUsed + 1
	if left < 0 {
		left = 0
	}
	return float64(left) * p.PerAttempt
}

// PolicyByName maps a configured policy name to an implementation.
// Unknown names fall back to the decay policy.
func PolicyByName(name string) Policy {
	switch name {
	case "attempts":
		return AttemptsPolicy{PerAttempt: 5}
	default:
		return DecayPolicy{Base: 30, Step: 10}
	}
}
