package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

var (
	importUser    string
	importNoAudit bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import customers from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importUser, "user", "", "username recorded as the creator of imported customers")
	importCmd.Flags().BoolVar(&importNoAudit, "no-audit", false, "do not record the run in the audit trail")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	if !importNoAudit {
		if err := a.connectAudit(ctx); err != nil {
			log.Warn().Err(err).Msg("import audit unavailable, run will not be recorded")
		}
	}

	var actor domain.Actor
	if importUser != "" {
		u, err := a.users.FindByUsername(ctx, importUser)
		if err != nil {
			return fmt.Errorf("user %q: %w", importUser, err)
		}
		actor = domain.Actor{ID: u.ID, Username: u.Username}
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := a.importService().Import(ctx, ports.ImportInput{
		File:     f,
		Filename: filepath.Base(args[0]),
		Actor:    actor,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, msg := range result.Messages() {
		fmt.Fprintln(out, msg)
	}
	fmt.Fprintf(out, "imported=%d failed=%d skipped=%d\n",
		result.SuccessCount(), result.ErrorCount(), result.SkippedCount())
	return nil
}
