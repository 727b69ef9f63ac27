// internal/game/score.go
//
// Positional feedback scoring for a guess against a secret.
// Pure and deterministic; callers validate lengths beforehand.

package game

// Score implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) secret letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Miss.
//
// The pass order matters: resolving all Hits first guarantees that
// Hit+Present for any letter never exceeds that letter's occurrence count
// in the secret, even with repeated letters in both words.
func Score(secret, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	secretRunes := []rune(secret)
	guessRunes := []rune(guess)

	// Letter frequency for the non-hit positions (a-z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guessRunes[i] == secretRunes[i] {
			res[i] = MarkHit
		} else {
			counts[idx(secretRunes[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guessRunes[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// idx maps a lowercase ASCII letter rune to 0..25.
// Assumes inputs are validated to a-z elsewhere.
func idx(r rune) int { return int(r - 'a') }

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}
