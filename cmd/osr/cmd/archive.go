package cmd

import (
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/osr/pkg/di"
)

// archiveCmd groups the replay archive commands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local replay archive",
	Long: `Store, fetch, list and delete replays in the archive kept under the
configured data directory.`,
}

var archivePutCmd = &cobra.Command{
	Use:   "put <file>...",
	Short: "Add replay files to the archive",
	Long: `Decode each file to make sure it is a valid replay, then store it.
The new id is printed for every file.

Example:
  osr archive put a.osr b.osr`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(archive di.Archive) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read replay: %w", err)
				}
				rep, err := container.GetCodec().Decode(data)
				if err != nil {
					return fmt.Errorf("failed to decode %s: %w", path, err)
				}
				id, err := archive.Put(data)
				if err != nil {
					return fmt.Errorf("failed to store %s: %w", path, err)
				}
				log := container.GetLogger()
				log.Debug().Str("id", id.String()).Str("file", path).Msg("archived replay")
				cmd.Printf("%s\t%s\t%s\n", id, rep.PlayerName, path)
			}
			return nil
		})
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id> [out]",
	Short: "Fetch a replay from the archive",
	Long: `Write the archived replay to out, or print its summary when out is
omitted.

Examples:
  osr archive get 2ZxQ... replay.osr
  osr archive get 2ZxQ... --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid replay id %q: %w", args[0], err)
		}

		return withArchive(cmd, func(archive di.Archive) error {
			data, err := archive.Get(id)
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", id, err)
			}

			if len(args) == 2 {
				if err := os.WriteFile(args[1], data, 0644); err != nil {
					return fmt.Errorf("failed to write replay: %w", err)
				}
				cmd.Printf("Wrote %s (%d bytes)\n", args[1], len(data))
				return nil
			}

			rep, err := container.GetCodec().Decode(data)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", id, err)
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return outputReplay(cmd.OutOrStdout(), rep, asJSON, false)
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived replays, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		return withArchive(cmd, func(archive di.Archive) error {
			ids, err := archive.List(limit)
			if err != nil {
				return fmt.Errorf("failed to list replays: %w", err)
			}
			return outputIDs(cmd.OutOrStdout(), ids, asJSON)
		})
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid replay id %q: %w", args[0], err)
		}

		return withArchive(cmd, func(archive di.Archive) error {
			if err := archive.Delete(id); err != nil {
				return fmt.Errorf("failed to delete %s: %w", id, err)
			}
			cmd.Printf("Deleted %s\n", id)
			return nil
		})
	},
}

// withArchive opens the archive, honouring --data-dir, and closes it after fn
func withArchive(cmd *cobra.Command, fn func(di.Archive) error) error {
	if cmd.Flags().Changed("data-dir") {
		container.GetConfig().DataDir, _ = cmd.Flags().GetString("data-dir")
	}

	archive, err := container.OpenArchive()
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	return fn(archive)
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveGetCmd, archiveListCmd, archiveDeleteCmd)

	archiveCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the replay archive")
	archiveGetCmd.Flags().Bool("json", false, "Output the summary as JSON")
	archiveListCmd.Flags().Int("limit", 0, "Maximum number of ids (0 for all)")
	archiveListCmd.Flags().Bool("json", false, "Output as JSON")
}
