// Command crm runs the CRM API and its maintenance tasks.
//
// @title                       CRM API
// @version                     1.0
// @description                 Customer records, spreadsheet import and PDF reports.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/relaycrm/crm-system/internal/infrastructure/config"
	"github.com/relaycrm/crm-system/pkg/logger"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "crm",
	Short:         "CRM API server and maintenance commands",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		cfg = c
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.LogPretty,
			Service: "crm",
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
