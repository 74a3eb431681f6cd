package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/flow/internal/game"
	"github.com/robalobadob/flow/internal/script"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Transcript bool
}

// replayResult is the outcome of one scenario file.
type replayResult struct {
	File    string       `json:"file"`
	Name    string       `json:"name"`
	Moves   int          `json:"moves"`
	Summary game.Summary `json:"summary"`
	Passed  bool         `json:"passed"`
	Error   string       `json:"error,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay recorded pointer sessions through the engine",
		Long: `Replay one or more scenario files and check their expectations.

Exit codes:
  0 - every scenario met its expectations
  1 - at least one expectation failed
  2 - a scenario could not be loaded or replayed

Examples:
  flow replay testdata/solve-three.yaml
  flow replay --transcript scenarios/*.yaml`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Transcript, "transcript", false, "print the board after every event")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command, files []string) error {
	results := make([]replayResult, 0, len(files))
	transcripts := make([]string, 0, len(files))
	failed := 0

	for _, f := range files {
		sc, err := script.Load(f)
		if err != nil {
			return WrapExitError(ExitCommandError, f, err)
		}
		res, err := script.Run(sc)
		if err != nil {
			return WrapExitError(ExitCommandError, f, err)
		}
		rr := replayResult{File: f, Name: sc.Name, Moves: res.Moves, Summary: game.Summarize(res.Final()), Passed: true}
		if err := res.Check(); err != nil {
			rr.Passed, rr.Error = false, err.Error()
			failed++
		}
		results = append(results, rr)
		transcripts = append(transcripts, res.Transcript())
	}

	out := printer{format: opts.Format, w: cmd.OutOrStdout()}
	err := out.print(results, func(w io.Writer) {
		for i, rr := range results {
			if opts.Transcript {
				fmt.Fprintln(w, transcripts[i])
			}
			status := "PASS"
			if !rr.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(w, "%s %s (%s): %d moves, flows %d/%d, progress %d%%\n",
				status, rr.Name, rr.File, rr.Moves, rr.Summary.Flows, rr.Summary.Colors, rr.Summary.Progress)
			if rr.Error != "" {
				fmt.Fprintf(w, "  %s\n", rr.Error)
			}
		}
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", failed, len(results)))
	}
	return nil
}
