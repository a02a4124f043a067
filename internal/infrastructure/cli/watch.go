package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/infrastructure/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and report missed sessions as files change",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}

		report := func() {
			items, err := services.Schedule.CollectMissed()
			if err != nil {
				fmt.Printf("Scan failed: %v\n", err)
				return
			}
			stamp := time.Now().Format("15:04:05")
			if len(items) == 0 {
				fmt.Printf("[%s] No missed sessions.\n", stamp)
				return
			}
			fmt.Printf("[%s] %d missed session(s):\n", stamp, len(items))
			for _, item := range items {
				fmt.Printf("  - %s #%d %s (%.2gh)\n",
					item.PlanDate, item.Session.SessionNumber, item.Task.Title, item.Session.AllocatedHours)
			}
		}

		w, err := watch.NewWatcher(root, watch.DefaultSettle, report)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Close()

		fmt.Println("Watching workspace for changes... (Ctrl+C to stop)")
		report()

		ctx := cmd.Context()
		if os.Getenv("STUDYFLOW_WATCH_ONCE") == "true" {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Second)
			defer cancel()
		}

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
