package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLaunchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch [segments...]",
		Short: "Start the bundled validator",
		Long: `Start the KW3C validator (or another bundled tool given as path
segments relative to the installation root) as a detached process.

kw3c returns as soon as the process has been created. Starting it twice starts
two instances.

Examples:
  kw3c launch                          # start KW3CValidator/KW3C.exe
  kw3c launch tools/other.exe          # start another bundled tool
  kw3c launch --install-root /opt/app  # resolve against a different root`,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}

			report := container.LaunchService.Launch(cmd.Context(), args...)
			result := report.Result
			if !report.Started() {
				container.Logger.Debug().
					Str("launch_id", result.ID().String()).
					Str("key", report.Key.String()).
					Msg("launch reported failure")
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(report.Message))
				return &exitError{code: 1}
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(report.Message))
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("pid %d", result.PID())))
			return nil
		},
	}
}

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [segments...]",
		Short: "Print the absolute path of a bundled tool",
		Long: `Resolve path segments against the installation root without touching
the filesystem. With no segments the validator location is resolved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}

			path, err := container.LaunchService.Resolve(args...)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(container.LaunchService.ResolveFailureMessage(err)))
				return &exitError{code: 1}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path.String())
			return nil
		},
	}
}
