package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect audit trail records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var auditDiffCmd = &cobra.Command{
	Use:   "diff OBJECT_ID RECORD_A RECORD_B",
	Short: "Show what changed on an object between two audit records",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		changes, err := audit.Compare(cmd.Context(), s.client.Audit(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Print(audit.Render(changes))
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditDiffCmd)
}
