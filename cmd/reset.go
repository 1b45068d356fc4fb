package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingocalm/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear language, lesson and streak for the signed-in user",
	Long: `Clear language, lesson and streak for the signed-in user. The next run
starts from language selection. Completed lessons stay in the history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("refusing to reset without --yes")
		}

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			id, err := e.user()
			if err != nil {
				return err
			}
			if err := e.store.ProgressRepo().Save(ctx, id.String(), progress.DefaultState()); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
			fmt.Println("Progress reset.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
