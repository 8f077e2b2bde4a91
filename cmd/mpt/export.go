package main

import (
	"github.com/spf13/cobra"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/sync"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export IDS...",
	Short: "Export remote price lists to fresh workbooks",
	Long: `Export fetches each price list and all of its items from the
platform and writes a new two-sheet workbook per id. Available to
operations accounts only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		exporter := sync.NewExporter(s.client, s.account, logger)
		return exporter.Export(cmd.Context(), args, exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "Output directory for exported workbooks")
}
