package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var missedJSON bool

var missedCmd = &cobra.Command{
	Use:   "missed",
	Short: "List missed sessions still owed by pending tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		items, err := services.Schedule.CollectMissed()
		if err != nil {
			return MapError(fmt.Errorf("failed to collect missed sessions: %w", err))
		}

		if missedJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		fmt.Printf("Missed Sessions (%d)\n", len(items))
		fmt.Println(strings.Repeat("-", 25))
		for _, item := range items {
			fmt.Printf("  %s #%-3d %s (%.2gh)\n",
				item.PlanDate, item.Session.SessionNumber, item.Task.Title, item.Session.AllocatedHours)
		}
		if len(items) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

func init() {
	missedCmd.Flags().BoolVar(&missedJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(missedCmd)
}
