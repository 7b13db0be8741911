package engine

import (
	"gonum.org/v1/gonum/stat"

	"go-brightness-finder/pkg/models"
)

// DefaultRegionRadius is the radius of the square region averaged around
// the brightest point when the caller does not pick one.
const DefaultRegionRadius = 10

// histogramBins is the number of brightness histogram buckets, one per
// integer brightness level.
const histogramBins = 256

// AnalyzeFrameDetailed runs AnalyzeFrame and additionally computes the
// frame-wide mean brightness, a 256-bin brightness histogram, and the
// mean and standard deviation of the square region of the given radius
// around the brightest point, clamped to the frame bounds.
//
// The detailed pass is O(width*height) like the basic scan but allocates
// the histogram and region samples, so it is meant for a chosen frame
// (typically the brightest of a sequence), not the per-frame hot path.
func (a *Analyzer) AnalyzeFrameDetailed(f *Frame, frameIndex, regionRadius int) (models.FrameDetail, error) {
	result, err := a.AnalyzeFrame(f, frameIndex)
	if err != nil {
		return models.FrameDetail{}, err
	}
	if regionRadius <= 0 {
		regionRadius = DefaultRegionRadius
	}

	detail := models.FrameDetail{
		FrameResult:  result,
		RegionRadius: regionRadius,
		Histogram:    make([]int, histogramBins),
	}

	var sum float64
	pos := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			b := weightR*float64(f.Pix[pos]) + weightG*float64(f.Pix[pos+1]) + weightB*float64(f.Pix[pos+2])
			sum += b
			bin := int(b)
			if bin >= histogramBins {
				bin = histogramBins - 1
			}
			detail.Histogram[bin]++
			pos += 3
		}
	}
	detail.MeanBrightness = sum / float64(f.Width*f.Height)

	region := regionSamples(f, result.MaxPoint, regionRadius)
	detail.RegionMean = stat.Mean(region, nil)
	if len(region) > 1 {
		detail.RegionStdDev = stat.StdDev(region, nil)
	}

	return detail, nil
}

// regionSamples collects the brightness values of the square region of the
// given radius centered on p, clamped to the frame bounds. The region is
// never empty: it always contains at least p itself.
func regionSamples(f *Frame, p models.Point, radius int) []float64 {
	xMin, xMax := p.X-radius, p.X+radius
	yMin, yMax := p.Y-radius, p.Y+radius
	if xMin < 0 {
		xMin = 0
	}
	if yMin < 0 {
		yMin = 0
	}
	if xMax >= f.Width {
		xMax = f.Width - 1
	}
	if yMax >= f.Height {
		yMax = f.Height - 1
	}

	samples := make([]float64, 0, (xMax-xMin+1)*(yMax-yMin+1))
	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			r, g, b := f.RGBAt(x, y)
			samples = append(samples, Luminance(r, g, b))
		}
	}
	return samples
}

// sequenceStats summarizes the per-frame maxima of a finished sequence.
func sequenceStats(perFrame []models.FrameResult) *models.SequenceStats {
	maxima := make([]float64, len(perFrame))
	minMax := perFrame[0].MaxBrightness
	for i, r := range perFrame {
		maxima[i] = r.MaxBrightness
		if r.MaxBrightness < minMax {
			minMax = r.MaxBrightness
		}
	}

	stats := &models.SequenceStats{
		MeanMaxBrightness: stat.Mean(maxima, nil),
		MinMaxBrightness:  minMax,
	}
	if len(maxima) > 1 {
		stats.StdDevMaxBrightness = stat.StdDev(maxima, nil)
	}
	return stats
}
