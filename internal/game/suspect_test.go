package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWillingnessIsClamped(t *testing.T) {
	s := &Suspect{}
	s.Reset(150)
	assert.Equal(t, MaxWillingness, s.Willingness)

	s.DecreaseWillingness(30)
	assert.Equal(t, 70, s.Willingness)

	s.IncreaseWillingness(80)
	assert.Equal(t, MaxWillingness, s.Willingness)

	s.DecreaseWillingness(500)
	assert.Equal(t, 0, s.Willingness)
	assert.True(t, s.Silent())
}

func TestResetClearsLastMatch(t *testing.T) {
	s := &Suspect{LastMatch: GreetingMarker}
	s.Reset(40)

	assert.Empty(t, s.LastMatch)
	assert.Equal(t, 40, s.Willingness)
	assert.False(t, s.Silent())
}

func TestPersonalityLabel(t *testing.T) {
	s := &Suspect{PersonalityStyle: "nervous_but_precise"}
	assert.Equal(t, "nervous but precise", s.PersonalityLabel())
}
