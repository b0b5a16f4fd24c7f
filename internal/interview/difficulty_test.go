package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		prior string
		score float64
		want  string
	}{
		{DifficultyMedium, 8, DifficultyHard},
		{DifficultyMedium, 10, DifficultyHard},
		{DifficultyMedium, 7, DifficultyMedium},
		{DifficultyMedium, 5, DifficultyMedium},
		{DifficultyMedium, 4, DifficultyEasy},
		{DifficultyMedium, 0, DifficultyEasy},
		{DifficultyHard, 9, DifficultyHard},  // clamped at the top
		{DifficultyEasy, 2, DifficultyEasy},  // clamped at the bottom
		{DifficultyEasy, 8, DifficultyMedium},
		{DifficultyHard, 3, DifficultyMedium},
		{"weird", 9, DifficultyHard},  // unknown treated as medium
		{"", 3, DifficultyEasy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nextDifficulty(tt.prior, tt.score),
			"prior=%q score=%v", tt.prior, tt.score)
	}
}
