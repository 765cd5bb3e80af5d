package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{540, 600}, Interval{660, 720}, false},
		{"touching endpoints", Interval{540, 600}, Interval{600, 660}, false},
		{"partial overlap", Interval{540, 620}, Interval{600, 660}, true},
		{"contained", Interval{540, 720}, Interval{600, 660}, true},
		{"identical", Interval{540, 600}, Interval{540, 600}, true},
		{"one minute overlap", Interval{540, 601}, Interval{600, 660}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestIntervalDuration(t *testing.T) {
	assert.Equal(t, 60, Interval{Start: 540, End: 600}.Duration())
	assert.Equal(t, 0, Interval{Start: 540, End: 540}.Duration())
}

func TestRoundUpToServiceBlock(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{0, 0},
		{-15, 0},
		{1, 60},
		{45, 60},
		{60, 60},
		{61, 120},
		{90, 120},
		{120, 120},
		{121, 180},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundUpToServiceBlock(tt.duration), "duration=%d", tt.duration)
	}
}
