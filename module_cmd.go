package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
)

const ModuleUse = "module <module> <args-file|->"

var (
	ErrModuleFailed = errors.New("module failed")
)

func newModuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   ModuleUse,
		Short: "Run as an Ansible module, reading the argument document from a file or stdin",
		Long: `Runs one module invocation. The argument document is a JSON object holding
endpoint, graylog_user, graylog_password, validate_certs, action and the
resource fields. The result is written to stdout as JSON.`,
		Args: cobra.ExactArgs(2),
		RunE: runModule,
	}
}

func runModule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	runner, err := setupModule(cfg)
	if err != nil {
		return err
	}

	if code := runner.Run(cmd.Context(), args[0], args[1], cmd.InOrStdin(), cmd.OutOrStdout()); code != 0 {
		return ErrModuleFailed
	}
	return nil
}
