/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package palette

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed+1))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"white", White},
		{"BLACK", Black},
		{"#ffffff", White},
		{"#fff", White},
		{"#000000", Black},
		{"color(display-p3 0.25 0.5 0.75)", Color{0.25, 0.5, 0.75}},
		{"  color(display-p3 1 0 0)  ", Color{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-6)
			assert.InDelta(t, tt.want.G, got.G, 1e-6)
			assert.InDelta(t, tt.want.B, got.B, 1e-6)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#zzzzzz", "color(display-p3 2 0 0)", "color(rec2020 0 0 0)", "color(display-p3 0 0)"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", in)
	}
}

func TestStringRoundTrip(t *testing.T) {
	c := Color{0.123456789, 0.5, 1}
	assert.Equal(t, "color(display-p3 0.123456789 0.5 1)", c.String())

	got, err := Parse(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestSRGBPureRed(t *testing.T) {
	// P3 red lies outside sRGB.
	rgb := Color{1, 0, 0}.SRGB()
	assert.Greater(t, rgb[0], 1.0)
	assert.Less(t, rgb[1], 0.0)
}

func TestContrastWCAG21(t *testing.T) {
	assert.InDelta(t, 21.0, Contrast(White, Black, WCAG21), 1e-6)
	assert.InDelta(t, 21.0, Contrast(Black, White, WCAG21), 1e-6)
	assert.InDelta(t, 1.0, Contrast(White, White, WCAG21), 1e-9)
}

func TestContrastAPCA(t *testing.T) {
	assert.InDelta(t, 106.04, Contrast(White, Black, APCA), 0.1)
	assert.InDelta(t, -107.88, Contrast(Black, White, APCA), 0.1)
	assert.Zero(t, Contrast(White, White, APCA))

	grey := Color{0.5, 0.5, 0.5}
	assert.Zero(t, Contrast(grey, Color{0.501, 0.5, 0.5}, APCA))
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("apca")
	require.NoError(t, err)
	assert.Equal(t, APCA, a)

	a, err = ParseAlgorithm(" WCAG21 ")
	require.NoError(t, err)
	assert.Equal(t, WCAG21, a)

	_, err = ParseAlgorithm("wcag3")
	assert.Error(t, err)
}

func TestGenerateRandomPairIsAccessible(t *testing.T) {
	g := newTestGenerator(1)

	for range 50 {
		p, err := g.FromPreset(Random)
		require.NoError(t, err)

		c := Contrast(p.Primary, p.Secondary, APCA)
		assert.True(t, c > 60 || c <= -60, "contrast %v", c)
		assert.Equal(t, Contrast(p.Secondary, White, APCA) > 60, p.HighContrastWithWhite)
	}
}

func TestGenerateWithSeed(t *testing.T) {
	g := newTestGenerator(2)

	for _, preset := range []Preset{Light, Dark} {
		seed, err := Parse(preset.Seed)
		require.NoError(t, err)

		for range 20 {
			p, err := g.FromPreset(preset)
			require.NoError(t, err)

			assert.Equal(t, seed, p.Primary)
			assert.Greater(t, Contrast(p.Primary, p.Secondary, WCAG21), 4.5)
		}
	}
}

func TestGenerateInvalidSeed(t *testing.T) {
	g := newTestGenerator(3)

	_, err := g.Generate("definitely not a colour", 60, APCA)
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestGenerateUnsatisfiable(t *testing.T) {
	g := newTestGenerator(4)
	g.MaxAttempts = 25

	// WCAG 2.1 ratios never exceed 21.
	_, err := g.Generate("", 22, WCAG21)
	assert.ErrorIs(t, err, ErrContrastUnsatisfiable)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := newTestGenerator(7).FromPreset(Random)
	require.NoError(t, err)
	b, err := newTestGenerator(7).FromPreset(Random)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPairJSON(t *testing.T) {
	data, err := json.Marshal(Fallback)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "color(display-p3 1 1 1)", got["background"])
	assert.Equal(t, "color(display-p3 0 0 0)", got["color"])
	assert.Equal(t, false, got["white"])
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(Color{R: 0.25, G: 0.5, B: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `"color(display-p3 0.25 0.5 1)"`, string(data))
}

func TestRandomFor(t *testing.T) {
	assert.Equal(t, Random, RandomFor(APCA))

	preset := RandomFor(WCAG21)
	assert.Empty(t, preset.Seed)
	assert.Equal(t, WCAG21, preset.Algorithm)

	g := newTestGenerator(8)
	for range 20 {
		p, err := g.FromPreset(preset)
		require.NoError(t, err)
		assert.Greater(t, Contrast(p.Primary, p.Secondary, WCAG21), 4.5)
	}
}
