// Package reporter renders analysis output for the command line tool.
package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"go-brightness-finder/pkg/models"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:   color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

// MediaInfo announces the media about to be analyzed.
func (r *TerminalReporter) MediaInfo(location, kind string, frameCount int) {
	fmt.Println()
	_, _ = r.cyan.Println("MEDIA")
	r.printLabel(8, "Source:", location)
	r.printLabel(8, "Kind:", kind)
	if frameCount > 0 {
		r.printLabel(8, "Frames:", fmt.Sprintf("%d", frameCount))
	}
}

// AnalysisStarted sets up the per-frame progress bar. totalFrames <= 0
// renders a spinner-style bar for sources of unknown length.
func (r *TerminalReporter) AnalysisStarted(totalFrames int) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("ANALYSIS")

	r.mu.Lock()
	defer r.mu.Unlock()

	total := int64(totalFrames)
	if total <= 0 {
		total = -1
	}
	r.progress = progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Scanning [",
			BarEnd:        "]",
		}),
	)
}

// AnalysisProgress advances the bar to the given analyzed-frame count.
func (r *TerminalReporter) AnalysisProgress(analyzed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress == nil {
		return
	}
	_ = r.progress.Set64(int64(analyzed))
}

// Report renders the finished analysis report.
func (r *TerminalReporter) Report(report *models.AnalysisReport, elapsedSec float64) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	r.printLabel(10, "Session:", report.ID)
	r.printLabel(10, "Frames:", fmt.Sprintf("%d analyzed of %d seen", report.FrameCount, report.FramesSeen))
	r.printLabel(10, "Time:", fmt.Sprintf("%.2fs", elapsedSec))
	if report.Cancelled {
		fmt.Printf("  %s\n", r.yellow.Sprint("Analysis cancelled; results are partial"))
	}

	if report.OverallMax == nil {
		fmt.Printf("  %s\n", r.yellow.Sprint("No frames analyzed"))
		return
	}

	max := report.OverallMax
	fmt.Printf("  %s frame %d at (%d, %d), brightness %s\n",
		r.bold.Sprint("Brightest:"),
		max.FrameIndex, max.MaxPoint.X, max.MaxPoint.Y,
		r.green.Sprintf("%.3f", max.MaxBrightness))

	if report.Stats != nil {
		r.printLabel(10, "Mean max:", fmt.Sprintf("%.3f", report.Stats.MeanMaxBrightness))
		r.printLabel(10, "Stddev:", fmt.Sprintf("%.3f", report.Stats.StdDevMaxBrightness))
		r.printLabel(10, "Min max:", fmt.Sprintf("%.3f", report.Stats.MinMaxBrightness))
	}
}

// FrameDetail renders the detailed breakdown of the brightest frame.
func (r *TerminalReporter) FrameDetail(detail *models.FrameDetail) {
	fmt.Println()
	_, _ = r.cyan.Println("BRIGHTEST FRAME")
	const w = 13
	r.printLabel(w, "Frame:", fmt.Sprintf("%d", detail.FrameIndex))
	r.printLabel(w, "Max point:", fmt.Sprintf("(%d, %d)", detail.MaxPoint.X, detail.MaxPoint.Y))
	r.printLabel(w, "Brightness:", fmt.Sprintf("%.3f", detail.MaxBrightness))
	r.printLabel(w, "Frame mean:", fmt.Sprintf("%.3f", detail.MeanBrightness))
	r.printLabel(w, "Region mean:", fmt.Sprintf("%.3f (radius %d)", detail.RegionMean, detail.RegionRadius))
	r.printLabel(w, "Region stddev:", fmt.Sprintf("%.3f", detail.RegionStdDev))
}

// Warning prints a highlighted warning.
func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

// Error prints a highlighted error to stderr.
func (r *TerminalReporter) Error(title string, err error) {
	r.finishProgress()
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", title)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err)
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}
