package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollbind/headless"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	*RootOptions
	From float64
	To   float64
	Step float64
}

// SampleResult is the JSON payload of sample and play.
type SampleResult struct {
	Applies   int                 `json:"applies"`
	Snapshots []headless.Snapshot `json:"snapshots"`
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sample <fixture>",
		Short: "Print element styles at a range of scroll offsets",
		Long: `Build the fixture page, bind its declarations and apply them at every
offset from --from to --to in --step increments. Each offset is applied
synchronously, without the frame and settle timers of a live scroll.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.From, "from", 0, "first scroll offset")
	cmd.Flags().Float64Var(&opts.To, "to", 100, "last scroll offset")
	cmd.Flags().Float64Var(&opts.Step, "step", 10, "offset increment")

	return cmd
}

func runSample(opts *SampleOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Step <= 0 {
		return formatter.Fail(ExitCommandError, ErrCodeFlags, fmt.Sprintf("--step must be positive, got %v", opts.Step), nil)
	}
	if opts.To < opts.From {
		return formatter.Fail(ExitCommandError, ErrCodeFlags, fmt.Sprintf("--to (%v) is before --from (%v)", opts.To, opts.From), nil)
	}

	f, err := LoadFixture(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	doc, clock, b, err := f.Mount()
	if err != nil {
		return outputLoadError(formatter, err)
	}
	defer b.Unbind()

	var result SampleResult
	for i := 0; ; i++ {
		offset := opts.From + float64(i)*opts.Step
		if offset > opts.To {
			break
		}
		b.Apply(offset)
		slog.Debug("sampled", "offset", offset, "applies", b.Applies())
		snap := headless.Capture(doc, clock, fmt.Sprintf("offset %v", offset))
		snap.ScrollTop = offset
		result.Snapshots = append(result.Snapshots, snap)
	}
	result.Applies = b.Applies()
	formatter.VerboseLog("Sampled %d offset(s) with %d record(s)", len(result.Snapshots), b.Set().NumRecords())

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	for _, snap := range result.Snapshots {
		writeSnapshot(formatter.Writer, snap)
	}
	return nil
}

// writeSnapshot prints a snapshot as an indented element list. Elements
// without inline styles, classes or data are omitted.
func writeSnapshot(w io.Writer, snap headless.Snapshot) {
	fmt.Fprintf(w, "== %s (scroll %v, t=%v)\n", snap.Label, snap.ScrollTop, snap.Time)
	for _, el := range snap.Elements {
		if len(el.Styles) == 0 && len(el.Classes) == 0 && len(el.Data) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", elementLabel(el))
		if len(el.Classes) > 0 {
			fmt.Fprintf(w, "    class: %s\n", strings.Join(el.Classes, " "))
		}
		for _, k := range headless.SortedKeys(el.Styles) {
			fmt.Fprintf(w, "    %s: %s\n", k, el.Styles[k])
		}
		for _, k := range headless.SortedKeys(el.Data) {
			fmt.Fprintf(w, "    data-%s: %s\n", k, el.Data[k])
		}
	}
}

func elementLabel(el headless.ElementState) string {
	label := el.Name
	if el.ID != "" {
		label += "#" + el.ID
	}
	return label
}
