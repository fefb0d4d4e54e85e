package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGestureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gesture",
		Short: "Gesture commands",
	}

	cmd.AddCommand(newGestureFistCmd())
	cmd.AddCommand(newGestureTwoFingerCmd())

	return cmd
}

func newGestureFistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fist <session-id>",
		Short: "Send a fist gesture (rotates the piece)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/gestures/fist", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Fist gesture sent")
			return nil
		},
	}
}

func newGestureTwoFingerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "two-finger <session-id>",
		Short: "Send a two-finger gesture (hard-drops the piece)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/gestures/two-finger", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Two-finger gesture sent")
			return nil
		},
	}
}
