package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/osr/pkg/replay"
)

// parseDataCmd represents the parse-data command
var parseDataCmd = &cobra.Command{
	Use:   "parse-data <file>",
	Short: "Parse replay event data fetched from the score API",
	Long: `Parse an event stream that was downloaded on its own, without the
.osr header. The score API serves it LZMA compressed and base64 encoded.

Examples:
  osr parse-data score.txt --base64 --mode mania
  osr parse-data events.lzma --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		isBase64, _ := cmd.Flags().GetBool("base64")
		isCompressed, _ := cmd.Flags().GetBool("compressed")
		asJSON, _ := cmd.Flags().GetBool("json")

		mode, err := replay.ParseGameMode(modeName)
		if err != nil {
			return err
		}

		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read replay data: %w", err)
		}

		data, err := container.GetCodec().ParseReplayData(blob, isBase64, isCompressed, mode)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		return outputEventData(cmd.OutOrStdout(), data, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(parseDataCmd)
	parseDataCmd.Flags().String("mode", "standard", "Game mode (standard, taiko, catch, mania)")
	parseDataCmd.Flags().Bool("base64", false, "Input is base64 text")
	parseDataCmd.Flags().Bool("compressed", true, "Input is LZMA compressed")
	parseDataCmd.Flags().Bool("json", false, "Output as JSON")
}
