package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/flow/internal/game"
)

// checkResult is the JSON form of a successful check.
type checkResult struct {
	Rows   int            `json:"rows"`
	Scheme string         `json:"scheme"`
	Colors []game.ColorID `json:"colors"`
	Board  string         `json:"board"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <rows> <scheme>",
		Short: "Validate a scheme and draw its board",
		Long: `Validate a scheme: it must hold rows*rows cells, '-' for empty cells and
every color id exactly twice. Whitespace inside the scheme is ignored.

Exit codes:
  0 - scheme is valid
  1 - scheme is invalid
  2 - bad arguments

Examples:
  flow check 3 -- --ABB-A--
  flow check 5 "A-AB- B---- C--CD D---- E---E"`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "rows must be a number", err)
			}
			scheme := game.NormalizeScheme(strings.Join(args[1:], ""))
			st, err := game.ParseScheme(rows, scheme)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid scheme", err)
			}

			res := checkResult{Rows: rows, Scheme: scheme, Colors: st.Colors(), Board: game.Render(st)}
			out := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return out.print(res, func(w io.Writer) {
				fmt.Fprint(w, res.Board)
				fmt.Fprintf(w, "ok: %dx%d, %d colors\n", rows, rows, len(res.Colors))
			})
		},
	}
}
