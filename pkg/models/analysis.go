package models

// Point is a pixel coordinate within a frame, origin at the top-left.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FrameResult is the outcome of analyzing a single frame: the largest
// perceptual brightness found and where it was found.
//
// MaxBrightness is the exact maximum over all pixels of the frame. When
// several pixels tie for the maximum, MaxPoint is the first one in
// row-major scan order (smallest y, then smallest x).
type FrameResult struct {
	FrameIndex    int     `json:"frame_index"`
	MaxBrightness float64 `json:"max_brightness"`
	MaxPoint      Point   `json:"max_point"`
}

// SequenceStats summarizes the per-frame maxima of a finalized report.
type SequenceStats struct {
	MeanMaxBrightness   float64 `json:"mean_max_brightness"`
	StdDevMaxBrightness float64 `json:"stddev_max_brightness"`
	MinMaxBrightness    float64 `json:"min_max_brightness"`
}

// AnalysisReport aggregates the results of one analysis session.
//
// PerFrame holds one FrameResult per analyzed frame in frame order.
// OverallMax is the entry with the globally largest brightness; among equal
// brightness the earliest frame wins. It is nil when no frames were
// analyzed, which callers must treat as "no result" rather than an error.
type AnalysisReport struct {
	ID          string         `json:"id"`
	PerFrame    []FrameResult  `json:"per_frame"`
	OverallMax  *FrameResult   `json:"overall_max,omitempty"`
	FrameCount  int            `json:"frame_count"`
	FramesSeen  int            `json:"frames_seen"`
	Cancelled   bool           `json:"cancelled,omitempty"`
	Stats       *SequenceStats `json:"stats,omitempty"`
}

// FrameDetail extends a FrameResult with the region and distribution
// metrics shown on the results panel: the average brightness in a square
// region around the brightest point, the frame-wide mean, and a 256-bin
// histogram of brightness values.
type FrameDetail struct {
	FrameResult

	RegionRadius   int     `json:"region_radius"`
	RegionMean     float64 `json:"region_mean_brightness"`
	RegionStdDev   float64 `json:"region_stddev_brightness"`
	MeanBrightness float64 `json:"mean_brightness"`
	Histogram      []int   `json:"histogram"`
}
