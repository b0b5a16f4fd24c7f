package interview

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// nextDifficulty applies the adaptation policy to the prior turn's
// difficulty: score >= 8 escalates, 5-7 holds, <= 4 de-escalates, clamped
// at the ends of the scale. Unknown difficulties are treated as medium.
func nextDifficulty(prior string, score float64) string {
	levels := []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

	idx := 1
	for i, level := range levels {
		if level == prior {
			idx = i
			break
		}
	}

	switch {
	case score >= 8:
		idx++
	case score <= 4:
		idx--
	}

	if idx < 0 {
		idx = 0
	}
	if idx >= len(levels) {
		idx = len(levels) - 1
	}
	return levels[idx]
}
