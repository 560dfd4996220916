/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package palette

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	DefaultMaxAttempts = 1000

	// Contrast at or below this value is accepted regardless of threshold.
	negativeGuard = -60
)

// Pair is an accessible background/foreground combination.
type Pair struct {
	Primary   Color
	Secondary Color

	// HighContrastWithWhite reports whether Secondary clears the threshold
	// against pure white, so callers can pick white or black accents.
	HighContrastWithWhite bool
}

// Fallback is used when generation gives up.
var Fallback = Pair{Primary: White, Secondary: Black}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Background Color `json:"background"`
		Color      Color `json:"color"`
		White      bool  `json:"white"`
	}{
		Background: p.Primary,
		Color:      p.Secondary,
		White:      p.HighContrastWithWhite,
	})
}

// Preset couples a threshold with the algorithm it is meaningful for.
type Preset struct {
	Seed      string
	Threshold float64
	Algorithm Algorithm
}

var (
	Random = Preset{Threshold: 60, Algorithm: APCA}
	Light  = Preset{Seed: "#ffffff", Threshold: 4.5, Algorithm: WCAG21}
	Dark   = Preset{Seed: "#000000", Threshold: 4.5, Algorithm: WCAG21}
)

// RandomFor returns the unseeded preset for algo, with a threshold on that
// algorithm's scale.
func RandomFor(algo Algorithm) Preset {
	if algo == WCAG21 {
		return Preset{Threshold: 4.5, Algorithm: WCAG21}
	}
	return Random
}

// Generator draws colour pairs by rejection sampling. It is safe for
// concurrent use.
type Generator struct {
	MaxAttempts int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}

	return &Generator{
		MaxAttempts: DefaultMaxAttempts,
		rng:         rand.New(src),
	}
}

func (g *Generator) randomColor() Color {
	return Color{R: g.rng.Float64(), G: g.rng.Float64(), B: g.rng.Float64()}
}

func accessible(bg, fg Color, threshold float64, algo Algorithm) bool {
	c := Contrast(bg, fg, algo)
	return c > threshold || c <= negativeGuard
}

// Generate returns a pair whose contrast under algo exceeds threshold (or
// is strongly negative). A non-empty seed is held fixed as the primary colour.
func (g *Generator) Generate(seed string, threshold float64, algo Algorithm) (Pair, error) {
	var (
		primary Color
		fixed   bool
	)

	if seed != "" {
		c, err := Parse(seed)
		if err != nil {
			return Pair{}, err
		}
		primary, fixed = c, true
	}

	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for range attempts {
		if !fixed {
			primary = g.randomColor()
		}
		secondary := g.randomColor()

		if accessible(primary, secondary, threshold, algo) {
			return Pair{
				Primary:               primary,
				Secondary:             secondary,
				HighContrastWithWhite: Contrast(secondary, White, algo) > threshold,
			}, nil
		}
	}

	return Pair{}, fmt.Errorf("%w: %s > %g after %d attempts", ErrContrastUnsatisfiable, algo, threshold, attempts)
}

// FromPreset generates a pair using p's seed, threshold and algorithm.
func (g *Generator) FromPreset(p Preset) (Pair, error) {
	return g.Generate(p.Seed, p.Threshold, p.Algorithm)
}
