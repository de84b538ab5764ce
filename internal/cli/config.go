package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Long: `Inspect how gophpfix resolves its configuration.

Configuration is layered, highest precedence first: command-line flags,
GOPHPFIX_* environment variables, the file given with --config, the nearest
.gophpfix.yml, the user config and the system config.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, _, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}
			return writeEffectiveConfig(cmd.OutOrStdout(), loaded)
		},
	}
}

func writeEffectiveConfig(out io.Writer, loaded *configloader.LoadResult) error {
	content, err := loaded.Config.ToYAML()
	if err != nil {
		return err
	}
	if len(loaded.LoadedFrom) == 0 {
		fmt.Fprintln(out, "# built-in defaults")
	}
	for _, path := range loaded.LoadedFrom {
		fmt.Fprintf(out, "# loaded from %s\n", path)
	}
	_, err = out.Write(content)
	return err
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file",
		Long: `Check a configuration file, resolving its rules against the built-in
fixers. Without an argument, the configuration gophpfix would use in the
current directory is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, args)
		},
	}
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	var (
		loaded *configloader.LoadResult
		err    error
	)
	if len(args) == 1 {
		loaded, err = configloader.Load(commandContext(cmd), configloader.LoadOptions{
			ExplicitPath:        args[0],
			IgnoreSystemConfig:  true,
			IgnoreUserConfig:    true,
			IgnoreProjectConfig: true,
			IgnoreEnv:           true,
		})
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		for _, warning := range loaded.Warnings {
			logger.Warn(warning)
		}
	} else {
		loaded, _, err = loadConfig(cmd, &config.Config{})
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	fixers, err := configloader.ResolveFixers(loaded.Config, nil)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if len(loaded.LoadedFrom) == 0 {
		logger.Info("configuration is valid", logging.FieldConfig, "defaults", logging.FieldFixers, len(fixers))
		return nil
	}
	logger.Info("configuration is valid",
		logging.FieldConfig, loaded.LoadedFrom[len(loaded.LoadedFrom)-1],
		logging.FieldFixers, len(fixers),
	)
	return nil
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables gophpfix reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewInteractive(cmd.OutOrStdout())
			descriptions := configloader.ListEnvVars()
			for _, name := range configloader.EnvVarNames() {
				logger.Info(name, logging.FieldDescription, descriptions[name])
			}
			return nil
		},
	}
}
