package solver

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Encode compares guess against answer using the two-pass Wordle rules.
//
// Pass 1:
//   - Credit exact matches with 2*3^i.
//   - Count the remaining (non-hit) answer letters.
//
// Pass 2:
//   - For each non-hit position, credit 1*3^i if an unconsumed answer
//     letter matches, and consume it; otherwise leave 0.
//
// Letters used by an exact match are never available as "present".
// Bytes are counted raw, so any Word value can be scored.
func Encode(answer, guess words.Word) Feedback {
	var (
		f      Feedback
		counts [256]uint8
		hit    [words.Len]bool
	)

	for i := 0; i < words.Len; i++ {
		if answer[i] == guess[i] {
			f += 2 * pow3[i]
			hit[i] = true
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < words.Len; i++ {
		if hit[i] {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			f += pow3[i]
			counts[c]--
		}
	}
	return f
}

// Score returns the per-position marks for guess against answer.
func Score(answer, guess words.Word) [words.Len]Mark {
	return Encode(answer, guess).Marks()
}
