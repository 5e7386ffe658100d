package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrInvalidIconName is returned for pointer icon names other than the three
// shipped colors.
var ErrInvalidIconName = fmt.Errorf("invalid pointer icon name")

// iconSize is the pixel diameter of the generated pointer icons.
const iconSize = 32

var iconColors = map[string]color.NRGBA{
	"red":   {R: 0xe8, G: 0x22, B: 0x1c, A: 0xff},
	"green": {R: 0x2e, G: 0xc2, B: 0x27, A: 0xff},
	"blue":  {R: 0x1c, G: 0x52, B: 0xe8, A: 0xff},
}

// LoadIcon returns the pointer icon for the given color name. Valid names
// are "red", "green" and "blue"; anything else is a caller bug and fails
// with ErrInvalidIconName.
func LoadIcon(name string) (image.Image, error) {
	base, ok := iconColors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIconName, name)
	}
	return renderIcon(base), nil
}

// renderIcon draws a laser dot: a saturated core with a soft glow falloff.
func renderIcon(base color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize) / 2
	radius := center - 1

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			d := math.Hypot(dx, dy) / radius
			if d >= 1 {
				continue
			}

			px := base
			switch {
			case d < 0.35:
				// Bright core, blended towards white at the very center.
				w := 1 - d/0.35
				px.R = blend(base.R, 0xff, 0.6*w)
				px.G = blend(base.G, 0xff, 0.6*w)
				px.B = blend(base.B, 0xff, 0.6*w)
			default:
				// Quadratic glow falloff.
				f := (1 - d) / 0.65
				px.A = uint8(math.Round(255 * f * f))
			}
			img.SetNRGBA(x, y, px)
		}
	}
	return img
}

func blend(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
}
