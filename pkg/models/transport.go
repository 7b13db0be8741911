package models

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	URL        string `json:"url" binding:"required,url"`
	SampleRate int    `json:"sample_rate,omitempty"`
	MaxFrames  int    `json:"max_frames,omitempty"`
}

// DetailedAnalyzeRequest is the body of POST /analyze/detailed.
type DetailedAnalyzeRequest struct {
	URL          string `json:"url" binding:"required,url"`
	SampleRate   int    `json:"sample_rate,omitempty"`
	MaxFrames    int    `json:"max_frames,omitempty"`
	RegionRadius int    `json:"region_radius,omitempty"`
}

// ErrorResponse is the JSON shape of any failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AnalysisResponse is the response from POST /analyze.
type AnalysisResponse struct {
	MediaURL          string          `json:"media_url"`
	MediaKind         string          `json:"media_kind"`
	Timestamp         string          `json:"timestamp"`
	ProcessingTimeSec float64         `json:"processing_time_sec"`
	Report            *AnalysisReport `json:"report"`
}

// DetailedAnalysisResponse adds the detailed breakdown of the brightest
// frame to the basic response. BrightestFrame is nil when the report is
// empty.
type DetailedAnalysisResponse struct {
	AnalysisResponse

	BrightestFrame *FrameDetail `json:"brightest_frame,omitempty"`
}
