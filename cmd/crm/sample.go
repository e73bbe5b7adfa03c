package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaycrm/crm-system/internal/core/ports"
	"github.com/relaycrm/crm-system/internal/core/service"
	"github.com/relaycrm/crm-system/internal/infrastructure/spreadsheet"
)

var sampleOut string

// sampleCmd needs no database: the template is static.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the customer import template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc := service.NewImportService(nil, nil, spreadsheet.NewTemplate(), nil, service.ImportOptions{}, log)
		doc, err := svc.SampleTemplate(cmd.Context())
		if err != nil {
			return err
		}
		return writeDocument(cmd, doc, sampleOut)
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "output", "o", "", "output path (default: "+service.SampleFilename+")")
}

func writeDocument(cmd *cobra.Command, doc *ports.Document, path string) error {
	if path == "" {
		path = doc.Filename
	}
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(doc.Body))
	return nil
}
