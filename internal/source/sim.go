package source

import (
	"context"
	"math"
	"math/rand"

	"go-brightness-finder/internal/engine"
)

// SimCamera is a synthetic frame source standing in for real capture
// hardware: a dim pulsating background with one bright spot orbiting the
// center. Frames are a pure function of the seed and frame number, so a
// given seed always produces the same stream. The stream is unbounded;
// callers end it through context cancellation or a frame limit.
type SimCamera struct {
	width, height int
	frame         int
	phase         float64
}

// NewSimCamera creates a simulated camera. Width and height default to
// 640x480 when not positive.
func NewSimCamera(width, height int, seed int64) *SimCamera {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}
	rng := rand.New(rand.NewSource(seed))
	return &SimCamera{
		width:  width,
		height: height,
		phase:  rng.Float64() * 2 * math.Pi,
	}
}

func (c *SimCamera) Next(ctx context.Context) (*engine.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := engine.NewFrame(c.width, c.height)
	t := float64(c.frame) / 30.0 // nominal 30fps clock
	c.frame++

	// Pulsating gray background, same envelope as the hardware stand-in
	// this replaces: 10..40 over a sine period.
	gray := uint8(10 + (math.Sin(t+c.phase)+1)*15)
	for i := range f.Pix {
		f.Pix[i] = gray
	}

	// Bright spot orbiting the center at a third of the frame size.
	cx := float64(c.width) / 2
	cy := float64(c.height) / 2
	radius := math.Min(cx, cy) * 2 / 3
	spotX := int(cx + radius*math.Cos(t+c.phase))
	spotY := int(cy + radius*math.Sin(t+c.phase))
	drawSpot(f, spotX, spotY, 6)

	return f, nil
}

// drawSpot renders a bright disc with linear falloff toward the rim.
func drawSpot(f *engine.Frame, cx, cy, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
				continue
			}
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist > float64(radius) {
				continue
			}
			v := uint8(255 - dist*(128/float64(radius)))
			f.SetRGB(x, y, v, v, v)
		}
	}
}
