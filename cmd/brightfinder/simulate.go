package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"go-brightness-finder/internal/engine"
	"go-brightness-finder/internal/factory"
	"go-brightness-finder/internal/reporter"
)

type simulateArgs struct {
	width      int
	height     int
	frames     int
	seed       int64
	sampleRate int
	jsonOutput bool
}

func newSimulateCmd() *cobra.Command {
	opts := &simulateArgs{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Analyze a synthetic camera stream with a moving bright spot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 640, "frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 480, "frame height in pixels")
	cmd.Flags().IntVar(&opts.frames, "frames", 100, "number of frames to capture")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "noise seed (0 = time-based)")
	cmd.Flags().IntVar(&opts.sampleRate, "sample-rate", 1, "analyze every Nth frame")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit the report as JSON instead of formatted text")

	return cmd
}

func runSimulate(opts *simulateArgs) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	camera := factory.NewSourceFactory().CreateSimulated(opts.width, opts.height, seed)

	term := reporter.NewTerminalReporter()
	if !opts.jsonOutput {
		term.MediaInfo("simulated camera", string(factory.SimulatedMedia), opts.frames)
		term.AnalysisStarted(analyzedFrameCount(opts.frames, opts.sampleRate, 0))
	}

	session := engine.NewSession(engine.NewAnalyzer())

	seqOpts := engine.SequenceOptions{
		SampleRate: opts.sampleRate,
		MaxFrames:  analyzedFrameCount(opts.frames, opts.sampleRate, 0),
	}
	if !opts.jsonOutput {
		seqOpts.Progress = func(analyzed, seen int) {
			term.AnalysisProgress(analyzed)
		}
	}

	start := time.Now()
	report, err := session.AnalyzeSequence(ctx, camera, seqOpts)
	elapsed := time.Since(start)
	if err != nil {
		term.Error("simulation failed", err)
		return err
	}

	if opts.jsonOutput {
		return printJSON(report, nil)
	}
	term.Report(report, elapsed.Seconds())
	return nil
}
