package engine

// ITU-R BT.601 luma weights. The three coefficients sum to 1.0, so a pixel
// with equal channels has a brightness equal to that channel value. These
// are fixed constants, not configuration.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// Luminance converts one RGB pixel to its perceptual brightness in
// [0, 255]. Pure function; reproducible bit-for-bit across platforms at
// double precision.
func Luminance(r, g, b uint8) float64 {
	return weightR*float64(r) + weightG*float64(g) + weightB*float64(b)
}
