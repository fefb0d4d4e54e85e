package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionPauseCmd())
	cmd.AddCommand(newSessionResetCmd())
	cmd.AddCommand(newSessionSnapshotCmd())
	cmd.AddCommand(newSessionRestoreCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{}
			if width > 0 {
				req["display_width"] = width
			}
			if height > 0 {
				req["display_height"] = height
			}

			var result GameState
			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Display width in pixels (grid height is derived from the aspect ratio)")
	cmd.Flags().IntVar(&height, "height", 0, "Display height in pixels")

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionList
			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Get a session's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session deleted")
			return nil
		},
	}
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <session-id>",
		Short: "Start or resume play",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRunE("start"),
	}
}

func newSessionPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <session-id>",
		Short: "Pause play",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRunE("pause"),
	}
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-id>",
		Short: "Reset to a fresh board, keeping the high score",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRunE("reset"),
	}
}

// transitionRunE builds a RunE for the POST transition endpoints that
// return the updated session state
func transitionRunE(action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var result GameState
		if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/%s", args[0], action), nil, &result); err != nil {
			return err
		}

		out := NewOutput(cfg.Output)
		out.Print(result)
		return nil
	}
}

func newSessionSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <session-id>",
		Short: "Save the session's state to storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/snapshot", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <session-id>",
		Short: "Restore the session's last saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRunE("restore"),
	}
}
