package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	FPS int
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play <fixture>",
		Short: "Run a fixture's scroll script and print its snapshots",
		Long: `Build the fixture page, bind its declarations and run the scroll script
against a simulated clock. Scroll events go through the same throttle,
settle and poll timers a browser page would drive.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.FPS, "fps", 60, "simulated frame rate")

	return cmd
}

func runPlay(opts *PlayOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.FPS <= 0 {
		return formatter.Fail(ExitCommandError, ErrCodeFlags, "--fps must be positive", nil)
	}

	f, err := LoadFixture(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	if f.Script == nil {
		return formatter.Fail(ExitCommandError, ErrCodeScript, "fixture has no script", nil)
	}
	doc, clock, b, err := f.Mount()
	if err != nil {
		return outputLoadError(formatter, err)
	}
	defer b.Unbind()
	clock.SetFrameInterval(time.Second / time.Duration(opts.FPS))

	formatter.VerboseLog("Playing %d step(s) at %d fps", len(f.Script.Steps), opts.FPS)
	snaps, err := f.Script.Run(doc, clock)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeScript, err.Error(), nil)
	}
	slog.Debug("script finished", "snapshots", len(snaps), "frames", clock.Frames(), "applies", b.Applies())

	result := SampleResult{Applies: b.Applies(), Snapshots: snaps}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	for _, snap := range snaps {
		writeSnapshot(formatter.Writer, snap)
	}
	return nil
}
