package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and verify the workspace history",
}

var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the recorded mutation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		events, err := services.Audit.GetTimeline()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		for _, e := range events {
			fmt.Printf("%s  %-20s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Actor)
		}
		if len(events) == 0 {
			fmt.Println("(no recorded events)")
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the workspace audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		fmt.Println("Verifying audit trail integrity...")
		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println("Audit trail is intact and verified.")
			return nil
		}

		fmt.Printf("Found %d integrity violations:\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  - %s\n", v)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	RootCmd.AddCommand(auditCmd)
}
