package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the contents of a replay file",
	Long: `Decode a .osr file and print its header, statistics and, optionally,
every input event.

Examples:
  osr inspect replay.osr
  osr inspect replay.osr --events
  osr inspect replay.osr --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		withEvents, _ := cmd.Flags().GetBool("events")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read replay: %w", err)
		}

		rep, err := container.GetCodec().Decode(data)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}

		return outputReplay(cmd.OutOrStdout(), rep, asJSON, withEvents)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Output as JSON")
	inspectCmd.Flags().Bool("events", false, "Include input events")
}
