package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/accounts"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/config"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/mpt"
)

var addEnvironment string

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage the local registry of API credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var accountsAddCmd = &cobra.Command{
	Use:   "add TOKEN",
	Short: "Register a token and make its account active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		environment := cfg.Environment
		if addEnvironment != "" {
			environment = addEnvironment
		}
		if environment == "" {
			return fmt.Errorf("no environment configured; pass --environment or set MPT_ENVIRONMENT")
		}

		client := mpt.NewClient(environment, args[0], logger).SetTimeout(cfg.HTTPTimeout)
		me, err := client.Accounts().Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("token rejected by %s: %w", environment, err)
		}

		registry, err := accounts.Load(cfg.AccountsFile)
		if err != nil {
			return err
		}
		if err := registry.Add(accounts.Account{
			ID:          me.ID,
			Name:        me.Name,
			Role:        me.Type,
			Token:       args[0],
			Environment: environment,
		}); err != nil {
			return err
		}
		fmt.Printf("Registered %s (%s, %s) and made it active\n", me.ID, me.Name, me.Type)
		return nil
	},
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		registry, err := accounts.Load(cfg.AccountsFile)
		if err != nil {
			return err
		}
		for _, account := range registry.Accounts {
			marker := " "
			if account.Active {
				marker = "*"
			}
			fmt.Printf("%s %-12s %-30s %-10s %s\n", marker, account.ID, account.Name, account.Role, account.Environment)
		}
		return nil
	},
}

var accountsActivateCmd = &cobra.Command{
	Use:   "activate ID",
	Short: "Make a registered account the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		registry, err := accounts.Load(cfg.AccountsFile)
		if err != nil {
			return err
		}
		return registry.Activate(args[0])
	},
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove an account from the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		registry, err := accounts.Load(cfg.AccountsFile)
		if err != nil {
			return err
		}
		registry.Remove(args[0])
		return registry.Save()
	},
}

func init() {
	accountsAddCmd.Flags().StringVar(&addEnvironment, "environment", "", "API base URL the token belongs to")

	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsActivateCmd)
	accountsCmd.AddCommand(accountsRemoveCmd)
}
