/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/osr/pkg/api"
	"github.com/ssargent/osr/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the osr REST API server. On first run a configuration file with a
generated API key is created.

Examples:
  osr serve
  osr serve --data-dir ./replays --port 9000 --print-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(cmd)
		cfg := container.GetConfig()

		if !config.ConfigExists(path) {
			cmd.Printf("First run detected. Bootstrapping osr...\n")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			var err error
			cfg, err = config.BootstrapConfig(path, dataDir)
			if err != nil {
				return fmt.Errorf("error bootstrapping config: %w", err)
			}
			cmd.Printf("Configuration created at %s\n", path)
		}

		if printKey, _ := cmd.Flags().GetBool("print-key"); printKey {
			cmd.Printf("API Key: %s\n", cfg.Security.APIKey)
		}

		// Command line flags override the config file
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			return fmt.Errorf("no API key configured in %s", path)
		}

		if err := container.Configure(cfg, cmd.ErrOrStderr()); err != nil {
			return err
		}

		archive, err := container.OpenArchive()
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Starting osr server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, archive, container.GetCodec(), api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
		}, container.GetLogger())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the replay archive")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().Bool("print-key", false, "Print the API key to the console")
}
