package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"go-brightness-finder/internal/engine"
	"go-brightness-finder/internal/factory"
	"go-brightness-finder/internal/reporter"
	"go-brightness-finder/internal/storage"
	"go-brightness-finder/pkg/models"
)

type analyzeArgs struct {
	detailed     bool
	jsonOutput   bool
	sampleRate   int
	maxFrames    int
	regionRadius int
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeArgs{}

	cmd := &cobra.Command{
		Use:   "analyze <path-or-url>",
		Short: "Analyze a local image, animation, or remote media URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "break down the brightest frame (region stats, histogram)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit the report as JSON instead of formatted text")
	cmd.Flags().IntVar(&opts.sampleRate, "sample-rate", 1, "analyze every Nth frame")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 0, "stop after this many analyzed frames (0 = no limit)")
	cmd.Flags().IntVar(&opts.regionRadius, "region-radius", engine.DefaultRegionRadius, "radius of the averaged region around the maximum")

	return cmd
}

func runAnalyze(location string, opts *analyzeArgs) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := loadMedia(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to load media: %w", err)
	}

	seq, kind, err := factory.NewSourceFactory().SourceForMedia(data)
	if err != nil {
		return err
	}

	term := reporter.NewTerminalReporter()
	if !opts.jsonOutput {
		term.MediaInfo(location, string(kind), seq.Len())
		term.AnalysisStarted(analyzedFrameCount(seq.Len(), opts.sampleRate, opts.maxFrames))
	}

	analyzer := engine.NewAnalyzer()
	session := engine.NewSession(analyzer)

	seqOpts := engine.SequenceOptions{
		SampleRate: opts.sampleRate,
		MaxFrames:  opts.maxFrames,
	}
	if !opts.jsonOutput {
		seqOpts.Progress = func(analyzed, seen int) {
			term.AnalysisProgress(analyzed)
		}
	}

	start := time.Now()
	report, err := session.AnalyzeSequence(ctx, seq, seqOpts)
	elapsed := time.Since(start)
	if err != nil {
		term.Error("analysis failed", err)
		return err
	}

	var detail *models.FrameDetail
	if opts.detailed && report.OverallMax != nil {
		frame, ok := seq.FrameAt(report.OverallMax.FrameIndex)
		if !ok {
			return fmt.Errorf("brightest frame %d no longer addressable", report.OverallMax.FrameIndex)
		}
		d, err := analyzer.AnalyzeFrameDetailed(frame, report.OverallMax.FrameIndex, opts.regionRadius)
		if err != nil {
			return err
		}
		detail = &d
	}

	if opts.jsonOutput {
		return printJSON(report, detail)
	}

	term.Report(report, elapsed.Seconds())
	if detail != nil {
		term.FrameDetail(detail)
	}
	return nil
}

// loadMedia reads the payload from disk, or over HTTP when the location
// looks like a URL.
func loadMedia(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		fetcher := storage.NewHTTPMediaFetcher(0)
		return fetcher.FetchMedia(ctx, location)
	}
	return os.ReadFile(location)
}

// analyzedFrameCount predicts how many frames the session will analyze,
// for sizing the progress bar.
func analyzedFrameCount(total, sampleRate, maxFrames int) int {
	if total <= 0 {
		return 0
	}
	if sampleRate < 1 {
		sampleRate = 1
	}
	analyzed := (total + sampleRate - 1) / sampleRate
	if maxFrames > 0 && analyzed > maxFrames {
		analyzed = maxFrames
	}
	return analyzed
}

func printJSON(report *models.AnalysisReport, detail *models.FrameDetail) error {
	out := struct {
		Report         *models.AnalysisReport `json:"report"`
		BrightestFrame *models.FrameDetail    `json:"brightest_frame,omitempty"`
	}{Report: report, BrightestFrame: detail}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
