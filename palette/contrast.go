/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package palette

import (
	"fmt"
	"math"
	"strings"
)

// Algorithm selects the contrast formula.
type Algorithm int

const (
	// APCA is the signed APCA-W3 lightness contrast (Lc). Positive values
	// mean dark text on a light background, negative the reverse.
	APCA Algorithm = iota
	// WCAG21 is the relative luminance ratio, from 1 to 21.
	WCAG21
)

func (a Algorithm) String() string {
	switch a {
	case APCA:
		return "APCA"
	case WCAG21:
		return "WCAG21"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm is case-insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "APCA":
		return APCA, nil
	case "WCAG21":
		return WCAG21, nil
	}
	return 0, fmt.Errorf("unknown contrast algorithm %q", s)
}

// Contrast of text colour fg on background bg.
func Contrast(bg, fg Color, algo Algorithm) float64 {
	if algo == WCAG21 {
		return contrastWCAG21(bg, fg)
	}
	return contrastAPCA(bg, fg)
}

func contrastWCAG21(a, b Color) float64 {
	y1 := math.Max(a.Luminance(), 0)
	y2 := math.Max(b.Luminance(), 0)
	if y2 > y1 {
		y1, y2 = y2, y1
	}
	return (y1 + 0.05) / (y2 + 0.05)
}

// APCA-W3 0.0.98G constants.
const (
	normBG      = 0.56
	normTXT     = 0.57
	revTXT      = 0.62
	revBG       = 0.65
	blkThrs     = 0.022
	blkClmp     = 1.414
	loClip      = 0.1
	deltaYmin   = 0.0005
	scaleBoW    = 1.14
	loBoWoffset = 0.027
	scaleWoB    = 1.14
	loWoBoffset = 0.027
)

func apcaLinearize(v float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), 2.4), v)
}

// apcaY estimates screen luminance from sRGB coordinates with the simple
// exponent APCA specifies instead of the piecewise sRGB curve.
func apcaY(c Color) float64 {
	rgb := c.SRGB()
	return 0.2126729*apcaLinearize(rgb[0]) +
		0.7151522*apcaLinearize(rgb[1]) +
		0.0721750*apcaLinearize(rgb[2])
}

func softClamp(y float64) float64 {
	if y >= blkThrs {
		return y
	}
	return y + math.Pow(blkThrs-y, blkClmp)
}

func contrastAPCA(bg, fg Color) float64 {
	yBG := softClamp(math.Max(apcaY(bg), 0))
	yTXT := softClamp(math.Max(apcaY(fg), 0))

	if math.Abs(yBG-yTXT) < deltaYmin {
		return 0
	}

	var c float64
	if yBG > yTXT {
		c = (math.Pow(yBG, normBG) - math.Pow(yTXT, normTXT)) * scaleBoW
	} else {
		c = (math.Pow(yBG, revBG) - math.Pow(yTXT, revTXT)) * scaleWoB
	}

	switch {
	case math.Abs(c) < loClip:
		return 0
	case c > 0:
		c -= loBoWoffset
	default:
		c += loWoBoffset
	}

	return c * 100
}
