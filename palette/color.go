/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package palette generates accessible foreground/background colour pairs
// in the Display-P3 colour space.
package palette

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidColor          = errors.New("invalid color")
	ErrContrastUnsatisfiable = errors.New("contrast threshold could not be satisfied")
)

// Color is a Display-P3 colour with gamma-encoded components in [0,1].
type Color struct {
	R, G, B float64
}

var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// p3ToXYZ converts linear Display-P3 to CIE XYZ (D65).
var p3ToXYZ = [3][3]float64{
	{0.4865709486482162, 0.26566769316909306, 0.1982172852343625},
	{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
	{0.0, 0.04511338185890264, 1.043944368900976},
}

// xyzToSRGB converts CIE XYZ (D65) to linear sRGB.
var xyzToSRGB = [3][3]float64{
	{3.2409699419045226, -1.537383177570094, -0.4986107602930034},
	{-0.9692436362808796, 1.8759675015077202, 0.04155505740717559},
	{0.05563007969699366, -0.20397695888897652, 1.0569715142428786},
}

// srgbToXYZ converts linear sRGB to CIE XYZ (D65).
var srgbToXYZ = [3][3]float64{
	{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
	{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
	{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
}

// xyzToP3 converts CIE XYZ (D65) to linear Display-P3.
var xyzToP3 = [3][3]float64{
	{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
	{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
	{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
}

func mul(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Display-P3 and sRGB share the same transfer function. Negative values
// keep their sign so out-of-gamut conversions stay reversible.
func toLinear(c float64) float64 {
	abs := math.Abs(c)
	if abs <= 0.04045 {
		return c / 12.92
	}
	return math.Copysign(math.Pow((abs+0.055)/1.055, 2.4), c)
}

func toGamma(c float64) float64 {
	abs := math.Abs(c)
	if abs <= 0.0031308 {
		return c * 12.92
	}
	return math.Copysign(1.055*math.Pow(abs, 1/2.4)-0.055, c)
}

func (c Color) linear() [3]float64 {
	return [3]float64{toLinear(c.R), toLinear(c.G), toLinear(c.B)}
}

// Luminance returns the CIE Y (relative luminance) of c.
func (c Color) Luminance() float64 {
	return mul(p3ToXYZ, c.linear())[1]
}

// SRGB returns the gamma-encoded sRGB coordinates of c. Colours outside the
// sRGB gamut produce components outside [0,1]; they are not clipped.
func (c Color) SRGB() [3]float64 {
	lin := mul(xyzToSRGB, mul(p3ToXYZ, c.linear()))
	return [3]float64{toGamma(lin[0]), toGamma(lin[1]), toGamma(lin[2])}
}

func fromSRGB(r, g, b float64) Color {
	lin := mul(xyzToP3, mul(srgbToXYZ, [3]float64{toLinear(r), toLinear(g), toLinear(b)}))
	return Color{R: clamp01(toGamma(lin[0])), G: clamp01(toGamma(lin[1])), B: clamp01(toGamma(lin[2]))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (c Color) String() string {
	return "color(display-p3 " + formatComponent(c.R) + " " + formatComponent(c.G) + " " + formatComponent(c.B) + ")"
}

func formatComponent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalText renders c in CSS Color 4 form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Parse reads a CSS colour. Accepted forms are hex (#rgb, #rrggbb), the
// keywords white and black, and color(display-p3 r g b).
func Parse(s string) (Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))

	switch {
	case in == "":
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	case in == "white":
		return White, nil
	case in == "black":
		return Black, nil
	case strings.HasPrefix(in, "#"):
		return parseHex(in)
	case strings.HasPrefix(in, "color(") && strings.HasSuffix(in, ")"):
		return parseColorFunc(in)
	}

	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(in string) (Color, error) {
	if len(in) == 4 {
		in = string([]byte{'#', in[1], in[1], in[2], in[2], in[3], in[3]})
	}

	c, err := colorful.Hex(in)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, in, err)
	}

	return fromSRGB(c.R, c.G, c.B), nil
}

func parseColorFunc(in string) (Color, error) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(in, "color("), ")"))
	if len(fields) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, in)
	}

	var coords [3]float64
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 || v > 1 {
			return Color{}, fmt.Errorf("%w: component %q", ErrInvalidColor, f)
		}
		coords[i] = v
	}

	switch fields[0] {
	case "display-p3":
		return Color{R: coords[0], G: coords[1], B: coords[2]}, nil
	case "srgb":
		return fromSRGB(coords[0], coords[1], coords[2]), nil
	}

	return Color{}, fmt.Errorf("%w: unsupported color space %q", ErrInvalidColor, fields[0])
}
