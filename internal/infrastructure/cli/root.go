package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var workspacePath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "studyflow",
	Version: Version,
	Short:   "A study planner that keeps missed sessions from falling through",
	Long: `Studyflow is a local-first study planner.
It tracks tasks and the sessions scheduled against them, notices when
a session was missed, and redistributes the lost hours onto open days.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&workspacePath, "workspace", "", "Path to the workspace root (defaults to the current directory)")
}
