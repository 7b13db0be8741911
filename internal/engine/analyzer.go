package engine

import (
	"runtime"
	"sync"

	"go-brightness-finder/pkg/models"
)

// parallelThreshold is the pixel count above which a frame is scanned in
// horizontal strips. Below it the goroutine overhead outweighs the scan.
const parallelThreshold = 100000

// Analyzer locates the brightest pixel of a frame. It holds no mutable
// state, so a single Analyzer may serve any number of concurrent sessions.
type Analyzer struct {
	parallelThreshold int
}

// NewAnalyzer creates a brightness analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{parallelThreshold: parallelThreshold}
}

// AnalyzeFrame scans every pixel of the frame in row-major order and
// returns the maximum brightness with its coordinate. Only a strictly
// greater sample replaces the running maximum, so among tied pixels the
// first in (y, x) order wins. O(width*height) time, no per-pixel
// allocation.
func (a *Analyzer) AnalyzeFrame(f *Frame, frameIndex int) (models.FrameResult, error) {
	if err := f.validate(); err != nil {
		return models.FrameResult{}, err
	}

	var best stripMax
	if f.Width*f.Height >= a.parallelThreshold && f.Height >= 2 {
		best = scanStrips(f)
	} else {
		best = scanRows(f, 0, f.Height)
	}

	return models.FrameResult{
		FrameIndex:    frameIndex,
		MaxBrightness: best.value,
		MaxPoint:      models.Point{X: best.x, Y: best.y},
	}, nil
}

// stripMax is the running maximum of one horizontal strip.
type stripMax struct {
	value float64
	x, y  int
}

// scanRows scans rows [startY, endY) in row-major order. value starts
// below any reachable brightness so the first pixel always seeds it.
func scanRows(f *Frame, startY, endY int) stripMax {
	best := stripMax{value: -1, x: 0, y: startY}
	pos := startY * f.Width * 3
	for y := startY; y < endY; y++ {
		for x := 0; x < f.Width; x++ {
			b := weightR*float64(f.Pix[pos]) + weightG*float64(f.Pix[pos+1]) + weightB*float64(f.Pix[pos+2])
			if b > best.value {
				best.value = b
				best.x = x
				best.y = y
			}
			pos += 3
		}
	}
	return best
}

// scanStrips splits the frame into horizontal strips scanned concurrently.
// Strip results are merged top to bottom with the same strictly-greater
// rule, so the outcome is identical to a single row-major scan.
func scanStrips(f *Frame) stripMax {
	numWorkers := runtime.NumCPU()
	if f.Height < numWorkers {
		numWorkers = f.Height
	}
	rowsPerWorker := (f.Height + numWorkers - 1) / numWorkers // ceil division

	results := make([]stripMax, numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		startY := i * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > f.Height {
			endY = f.Height
		}
		if startY >= endY {
			results[i] = stripMax{value: -1}
			continue
		}
		wg.Add(1)
		go func(i, startY, endY int) {
			defer wg.Done()
			results[i] = scanRows(f, startY, endY)
		}(i, startY, endY)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.value > best.value {
			best = r
		}
	}
	return best
}
