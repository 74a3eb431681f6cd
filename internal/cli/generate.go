package cli

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/robalobadob/flow/internal/game"
	"github.com/robalobadob/flow/internal/generator"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Rows     int
	Colors   int
	Seed     uint64
	Count    int
	Solution bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random solvable puzzles",
		Long: `Generate random solvable puzzles.

Text output is one "<rows> <scheme>" line per puzzle, the format of a
LEVELS_FILE, so the output can be appended to a level pack directly.

Examples:
  flow generate --rows 7 --colors 6
  flow generate --rows 5 --colors 4 --seed 42 --count 10 >> levels.txt
  flow generate --rows 5 --colors 4 --solution --format json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Rows, "rows", 7, "board side length")
	cmd.Flags().IntVar(&opts.Colors, "colors", 6, "number of colors")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&opts.Count, "count", 1, "number of puzzles")
	cmd.Flags().BoolVar(&opts.Solution, "solution", false, "also print the solved board")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	if opts.Count < 1 {
		return NewExitError(ExitCommandError, "--count must be at least 1")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := generator.NewRand(seed)

	puzzles := make([]generator.Puzzle, 0, opts.Count)
	for range opts.Count {
		p, err := generator.Generate(rng, opts.Rows, opts.Colors)
		if err != nil {
			return WrapExitError(ExitCommandError, "generate", err)
		}
		puzzles = append(puzzles, p)
	}

	out := printer{format: opts.Format, w: cmd.OutOrStdout()}
	return out.print(puzzles, func(w io.Writer) {
		for _, p := range puzzles {
			fmt.Fprintf(w, "%d %s\n", p.Rows, p.Scheme)
			if opts.Solution {
				fmt.Fprint(w, solvedBoard(p))
			}
		}
	})
}

// solvedBoard replays the puzzle's solution and renders the result.
func solvedBoard(p generator.Puzzle) string {
	st, err := game.ParseScheme(p.Rows, p.Scheme)
	if err != nil {
		return err.Error() + "\n"
	}
	for _, id := range st.Colors() {
		cells := p.Solution[id]
		st = game.Apply(st, game.Press(cells[0]))
		for _, c := range cells[1:] {
			st = game.Apply(st, game.Enter(c))
		}
		st = game.Apply(st, game.Release())
	}
	return game.Render(st)
}
