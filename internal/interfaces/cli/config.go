package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
)

func newConfigCommand(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration settings",
	}

	configCmd.AddCommand(newConfigShowCommand(a))
	configCmd.AddCommand(newConfigPathCommand(a))

	return configCmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}
			printConfig(cmd, container.Snapshot)
			return nil
		},
	}
}

func newConfigPathCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}
			if container.ConfigPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(none)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigPath)
			return nil
		},
	}
}

var configFields = []string{
	configdomain.FieldInstallRoot,
	configdomain.FieldToolPath,
	configdomain.FieldBundle,
	configdomain.FieldBundleDir,
	configdomain.FieldLocale,
	configdomain.FieldLogLevel,
}

func printConfig(cmd *cobra.Command, snap configdomain.Snapshot) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Current Configuration:"))
	for _, field := range configFields {
		entry, ok := snap[field]
		if !ok {
			fmt.Fprintf(out, "%-13s %s\n", field, mutedStyle.Render("(not set)"))
			continue
		}
		value := snap.String(field)
		if field == configdomain.FieldToolPath {
			value = strings.Join(snap.Strings(field), "/")
		}
		source := entry.Source
		if entry.SourcePath != "" {
			source += ": " + entry.SourcePath
		}
		fmt.Fprintf(out, "%-13s %s %s\n", field, value, mutedStyle.Render("("+source+")"))
	}
}
