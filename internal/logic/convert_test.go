package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDividerResistance(t *testing.T) {
	d := DefaultDivider

	tests := []struct {
		raw  int
		want float64
	}{
		{0, 0},
		{512, 10000},
		{256, 3333},
		{1000, 416666},
		{100, 1082},
	}
	for _, tc := range tests {
		got, ok := d.Resistance(tc.raw)
		assert.True(t, ok, "raw %d", tc.raw)
		assert.Equal(t, tc.want, got, "raw %d", tc.raw)
	}
}

func TestDividerRejectsFullScale(t *testing.T) {
	d := DefaultDivider
	for _, raw := range []int{1024, 2000, -1} {
		_, ok := d.Resistance(raw)
		assert.False(t, ok, "raw %d", raw)
	}
}

func TestDividerValidate(t *testing.T) {
	assert.NoError(t, DefaultDivider.Validate())
	assert.Error(t, Divider{VDD: 0, Resolution: 1024, Resistor: 1}.Validate())
	assert.Error(t, Divider{VDD: 5, Resolution: 0, Resistor: 1}.Validate())
	assert.Error(t, Divider{VDD: 5, Resolution: 1024, Resistor: -1}.Validate())
}

func TestIdentity(t *testing.T) {
	v, ok := Identity(734)
	assert.True(t, ok)
	assert.Equal(t, 734.0, v)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"low":    LevelLow,
		"Medium": LevelMedium,
		" HIGH ": LevelHigh,
	} {
		got, err := ParseLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("extreme")
	assert.Error(t, err)
}

func TestLevelAndChannelStrings(t *testing.T) {
	assert.Equal(t, "Low", LevelLow.String())
	assert.Equal(t, "High", LevelHigh.String())
	assert.Equal(t, "Level(5)", Level(5).String())
	assert.Equal(t, "temperature", ChannelTemperature.String())
	assert.Equal(t, "inverse", PolarityInverse.String())
}
