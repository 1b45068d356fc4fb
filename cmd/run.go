package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingocalm/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open today's lesson in the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctrl := e.controller(ctx)
	unsubscribe := ctrl.Watch(ctx, e.auth, nil)
	defer unsubscribe()

	return app.Run(ctx, app.Options{
		Controller: ctrl,
		Auth:       e.auth,
		History:    e.store.HistoryRepo(),
	})
}
