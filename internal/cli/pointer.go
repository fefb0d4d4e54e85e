package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPointerCmd() *cobra.Command {
	var noPointing bool

	cmd := &cobra.Command{
		Use:   "pointer <session-id> <x>",
		Short: "Report a pointer position",
		Long: `Report a normalised pointer position to steer the active piece.

X is in [0.0, 1.0] across the camera's view: below 0.4 nudges the piece
left, above 0.6 nudges it right, and the middle band holds it in place.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}

			req := map[string]any{"x": x, "pointing": !noPointing}
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/pointer", args[0]), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Pointer reported")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPointing, "no-pointing", false, "Report the hand as not in the pointing pose")

	return cmd
}
