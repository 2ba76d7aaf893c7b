package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		index      int
		catalogLen int
		want       float64
	}{
		{"init", StateInit, 0, 10, 0},
		{"industry select", StateIndustrySelect, 0, 10, 0},
		{"revenue input", StateRevenueInput, 0, 10, 20},
		{"quiz first question", StateQuiz, 0, 10, 25},
		{"quiz mid", StateQuiz, 4, 10, 51},
		{"quiz last question", StateQuiz, 9, 10, 83.5},
		{"quiz empty catalog", StateQuiz, 0, 0, 25},
		{"calculating", StateCalculating, 9, 10, 90},
		{"summary", StateSummaryReady, 9, 10, 100},
		{"email capture", StateEmailCapture, 9, 10, 100},
		{"full results", StateFullResults, 9, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Progress(tt.state, tt.index, tt.catalogLen), 1e-9)
		})
	}
}

func TestProgressIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, Progress(StateQuiz, 4, 10), Progress(StateQuiz, 4, 10))
	}
}
