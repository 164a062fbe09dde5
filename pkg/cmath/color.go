package cmath

import "github.com/pkg/errors"

// Color is an RGBA color with each channel in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// WhiteColor : the default color
func WhiteColor() Color {
	return Color{R: 1, G: 1, B: 1, A: 1}
}

func GreyColor(v float64) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// NewColor validates channel ranges; out-of-range values are a construction error.
func NewColor(r, g, b, a float64) (Color, error) {
	c := Color{R: r, G: g, B: b, A: a}
	if err := c.Check(); err != nil {
		return Color{}, err
	}
	return c, nil
}

func (c Color) Check() error {
	for _, ch := range [...]struct {
		name string
		val  float64
	}{{"r", c.R}, {"g", c.G}, {"b", c.B}, {"a", c.A}} {
		if ch.val < 0 || ch.val > 1 {
			return errors.Errorf("color channel %s out of range: %v", ch.name, ch.val)
		}
	}
	return nil
}
