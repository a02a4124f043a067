package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new studyflow workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo

		if repo.IsInitialized() {
			fmt.Println("Workspace is already initialized.")
			return nil
		}
		if err := repo.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}
		if err := services.Audit.Log("workspace.init", currentActor(), nil); err != nil {
			return fmt.Errorf("failed to record init: %w", err)
		}

		fmt.Println("Successfully initialized studyflow workspace.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
