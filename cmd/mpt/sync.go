package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/stats"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/sync"
)

var syncYes bool

var syncCmd = &cobra.Command{
	Use:   "sync PATHS...",
	Short: "Reconcile price-list workbooks against the platform",
	Long: `Sync reads each matched workbook, creates or updates its price list
on the platform, then applies the item rows marked with the update
action. Assigned ids and per-row errors are written back into the
workbook. Paths may be files, directories, or glob patterns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		confirm := sync.TerminalConfirm(os.Stdin, os.Stdout)
		if syncYes {
			confirm = sync.AlwaysConfirm
		}

		collector := stats.New()
		pipeline := sync.NewPipeline(s.client, s.account, collector, logger, confirm)

		err = pipeline.Sync(cmd.Context(), args)
		if len(collector.Files()) > 0 {
			fmt.Print(collector.Render())
		}
		return err
	},
}

func init() {
	syncCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "Apply without asking for confirmation")
}
