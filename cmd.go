package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

const (
	Use = "graylog-manage"

	EndpointFlag      = "endpoint"
	UsernameFlag      = "username"
	PasswordFlag      = "password"
	SchemeFlag        = "scheme"
	ValidateCertsFlag = "validate-certs"
	TimeoutFlag       = "timeout"
	ApplyDefaultsFlag = "apply-defaults"
	OutputFlag        = "output"
	LogLevelFlag      = "log-level"
)

// configKeys maps persistent flags onto configuration keys.
var configKeys = map[string]string{
	EndpointFlag:      "endpoint",
	UsernameFlag:      "username",
	PasswordFlag:      "password",
	SchemeFlag:        "scheme",
	ValidateCertsFlag: "validate_certs",
	TimeoutFlag:       "timeout",
	ApplyDefaultsFlag: "apply_defaults",
	OutputFlag:        "output",
	LogLevelFlag:      "log.level",
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           Use,
		Short:         "Declaratively manage Graylog index sets, streams and pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddFlags(cmd)

	for _, module := range resource.Modules() {
		cmd.AddCommand(newResourceCmd(module))
	}
	cmd.AddCommand(newModuleCmd())

	return cmd
}

func AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String(EndpointFlag, "", "Graylog host[:port][/prefix], without scheme")
	flags.String(UsernameFlag, "", "Graylog user")
	flags.String(PasswordFlag, "", "Graylog password (prefer GRAYLOG_PASSWORD)")
	flags.String(SchemeFlag, "https", "http or https")
	flags.Bool(ValidateCertsFlag, true, "verify the server TLS certificate")
	flags.Duration(TimeoutFlag, 0, "HTTP timeout, 0 waits forever")
	flags.Bool(ApplyDefaultsFlag, true, "fill unset fields with their defaults on create")
	flags.StringP(OutputFlag, "o", "json", "output format: json or yaml")
	flags.String(LogLevelFlag, "info", "debug, info, warn or error")

	for flag, key := range configKeys {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}
