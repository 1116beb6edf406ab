package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/osr/pkg/compress"
	"github.com/ssargent/osr/pkg/replay"
)

// repackCmd represents the repack command
var repackCmd = &cobra.Command{
	Use:   "repack <in> <out>",
	Short: "Decode a replay and encode it again",
	Long: `Decode a .osr file and write it back out, recompressing the event
stream. The result decodes to the same replay as the input.

Examples:
  osr repack replay.osr smaller.osr --preset 9`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := container.GetCodec()
		if cmd.Flags().Changed("preset") {
			preset, _ := cmd.Flags().GetInt("preset")
			if preset < int(compress.MinPreset) || preset > int(compress.MaxPreset) {
				return fmt.Errorf("preset %d out of range %d..%d", preset, compress.MinPreset, compress.MaxPreset)
			}
			opts := codec.Options()
			opts.Preset = compress.Preset(preset)
			codec = replay.NewCodec(opts)
		}

		in, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read replay: %w", err)
		}

		rep, err := codec.Decode(in)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}

		out, err := codec.Encode(rep)
		if err != nil {
			return fmt.Errorf("failed to encode replay: %w", err)
		}

		if err := os.WriteFile(args[1], out, 0644); err != nil {
			return fmt.Errorf("failed to write replay: %w", err)
		}

		log := container.GetLogger()
		log.Debug().
			Int("preset", int(codec.Options().Preset)).
			Int("events", len(rep.Events)).
			Msg("repacked replay")
		cmd.Printf("Wrote %s (%d bytes, was %d)\n", args[1], len(out), len(in))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repackCmd)
	repackCmd.Flags().Int("preset", int(compress.DefaultPreset), "LZMA preset 0-9 (default from config)")
}
