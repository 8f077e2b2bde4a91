package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/accounts"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/config"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/mpt"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/sync"
)

// Exit codes reported to the shell.
const (
	exitUsage   = 1
	exitNoFiles = 3
	exitFailed  = 4
)

var (
	cfgFile string
	debug   bool
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "mpt",
	Short:         "Operator tool for the SoftwareOne Marketplace platform",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if debug {
			logger.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $HOME/.mpt/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(auditCmd)
}

// session is everything a command needs to talk to the platform as
// the active account.
type session struct {
	cfg      *config.Config
	account  accounts.Context
	registry *accounts.Registry
	client   *mpt.Client
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	registry, err := accounts.Load(cfg.AccountsFile)
	if err != nil {
		return nil, err
	}
	active, err := registry.Active()
	if err != nil {
		return nil, err
	}

	account := active.Context()
	environment := account.Environment
	if cfg.Environment != "" {
		environment = cfg.Environment
	}
	client := mpt.NewClient(environment, account.Token, logger).SetTimeout(cfg.HTTPTimeout)

	return &session{cfg: cfg, account: account, registry: registry, client: client}, nil
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, sync.ErrNoFilesMatched):
		return exitNoFiles
	case errors.Is(err, sync.ErrHadFailures), errors.Is(err, sync.ErrOperationsRequired):
		return exitFailed
	default:
		return exitUsage
	}
}

func main() {
	_ = gotenv.Load()

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mpt",
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
