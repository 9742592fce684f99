package play

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{14, 15},
		{19, 20},
		{20, 25},
		{24, 25},
		{25, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextMilestone(tt.current), "current=%d", tt.current)
	}
}

func TestStreakRecord(t *testing.T) {
	var s streak
	for i := 0; i < 4; i++ {
		s.record(true)
		assert.False(t, s.milestone)
	}
	s.record(true)
	assert.True(t, s.milestone)
	assert.Equal(t, 5, s.current)

	s.record(true)
	assert.False(t, s.milestone)

	s.record(false)
	assert.Equal(t, 0, s.current)
	assert.Equal(t, 6, s.best)
	assert.False(t, s.milestone)
}
