package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourCandidates(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"at 6", []string{"18:00"}},
		{"around 7pm", []string{"19:00"}},
		{"at 9 o'clock", []string{"21:00"}},
		{"at 10:00", []string{"22:00"}},
		{"by 12", []string{"00:00"}},
		{"at 00:00", []string{"00:00"}},
		{"at 23", []string{"23:00"}},
		{"at 8:30", []string{"20:30", "20:00"}},
		{"half past eight", []string{"20:30", "20:00"}},
		{"eight forty five", []string{"20:45", "20:00"}},
		{"around midnight", []string{"00:00"}},
		{"earlier that night", []string{"18:00"}},
		{"and later?", []string{"22:00"}},
		{"at 3", nil},
		{"room 101", nil},
		{"nothing here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, hourCandidates(tt.text))
		})
	}
}

func TestLookupTimeline(t *testing.T) {
	timeline := map[string]string{"20:00": "home"}

	hour, entry, ok := lookupTimeline(timeline, []string{"20:30", "20:00"})
	assert.True(t, ok)
	assert.Equal(t, "20:00", hour)
	assert.Equal(t, "home", entry)

	_, _, ok = lookupTimeline(timeline, nil)
	assert.False(t, ok)
}
