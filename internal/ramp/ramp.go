// Package ramp maps normalized scalars onto a viridis-like color gradient.
package ramp

import "math"

// RGBA is an 8-bit-per-channel color quadruple.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Slice returns the color as [r, g, b, a], the form deck.gl accessors expect.
func (c RGBA) Slice() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// fillAlpha is the fixed opacity of every cell fill.
const fillAlpha = 200

// stops are the segment endpoints of the gradient, evenly spaced over [0,1]:
// dark purple through blue, teal and green to bright yellow.
var stops = [5][3]float64{
	{68, 1, 84},
	{59, 82, 139},
	{33, 144, 140},
	{94, 201, 98},
	{253, 231, 37},
}

// Viridis maps t to a color along the gradient. Inputs outside [0,1] are
// clamped to the endpoint colors rather than extrapolated.
func Viridis(t float64) RGBA {
	if t <= 0 || math.IsNaN(t) {
		return stopColor(0)
	}
	if t >= 1 {
		return stopColor(len(stops) - 1)
	}

	// Four segments of width 0.25 each.
	seg := int(t * 4)
	if seg > 3 {
		seg = 3
	}
	local := (t - float64(seg)*0.25) * 4

	lo, hi := stops[seg], stops[seg+1]
	return RGBA{
		R: lerpChannel(lo[0], hi[0], local),
		G: lerpChannel(lo[1], hi[1], local),
		B: lerpChannel(lo[2], hi[2], local),
		A: fillAlpha,
	}
}

func stopColor(i int) RGBA {
	return RGBA{
		R: uint8(stops[i][0]),
		G: uint8(stops[i][1]),
		B: uint8(stops[i][2]),
		A: fillAlpha,
	}
}

func lerpChannel(a, b, t float64) uint8 {
	return uint8(math.Round(a + (b-a)*t))
}
