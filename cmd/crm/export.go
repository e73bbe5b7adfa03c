package main

import (
	"context"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export customer reports",
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Write the customer PDF report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		doc, err := a.reportService().CustomersPDF(ctx)
		if err != nil {
			return err
		}
		return writeDocument(cmd, doc, exportOut)
	},
}

func init() {
	exportPDFCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output path (default: customers_YYYYMMDD.pdf)")
	exportCmd.AddCommand(exportPDFCmd)
}
