package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kw3c.dev/cli/internal/core/domain/messages"
	"kw3c.dev/cli/internal/infrastructure/i18n"
)

func newMessagesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Inspect the localized message catalog",
	}

	cmd.AddCommand(newMessagesGetCommand(a))
	cmd.AddCommand(newMessagesListCommand(a))
	cmd.AddCommand(newMessagesCheckCommand(a))
	cmd.AddCommand(newMessagesBrowseCommand(a))

	return cmd
}

func newMessagesGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [args...]",
		Short: "Print the localized text for a key",
		Long: `Print the localized text for a key, substituting {0}, {1}, ... with
the remaining arguments. An unknown key prints the !key! marker and exits 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}

			formatArgs := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				formatArgs = append(formatArgs, arg)
			}

			text, found := container.CatalogService.Lookup(messages.Key(args[0]), formatArgs...)
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), warningStyle.Render(text))
				return &exitError{code: 1}
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newMessagesListCommand(a *app) *cobra.Command {
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every message of the active locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}

			svc := container.CatalogService
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Bundle %s (%s)", svc.Bundle(), svc.Locale())))
			for _, entry := range svc.List() {
				if missingOnly && !entry.Missing {
					continue
				}
				line := fmt.Sprintf("%-45s %s", entry.Key, entry.Text)
				switch {
				case entry.Missing:
					line = warningStyle.Render(line)
				case !entry.Declared:
					line = mutedStyle.Render(line + "  (unused)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Only show keys without a translation")
	return cmd
}

func newMessagesCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check every locale of the bundle for missing keys",
		Long: `Compare each table of the message bundle with the keys kw3c looks up.
Exits 1 when any table lacks a key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}

			report, err := container.CatalogService.Check(cmd.Context())
			if err != nil {
				return fmt.Errorf("integrity check failed: %w", err)
			}
			renderIntegrity(cmd, report)
			if err := report.Err(); err != nil {
				container.Logger.Debug().Err(err).Msg("bundle integrity check found gaps")
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

func renderIntegrity(cmd *cobra.Command, report i18n.IntegrityReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Bundle "+report.Bundle))
	for _, lr := range report.Locales {
		name := i18n.DescribeLocale(lr.Locale)
		if lr.Complete() {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("  %-10s complete", name)))
		} else {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("  %-10s missing %d: %s", name, len(lr.Missing), joinKeys(lr.Missing))))
		}
		if len(lr.Extra) > 0 {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("  %-10s unused %d: %s", "", len(lr.Extra), joinKeys(lr.Extra))))
		}
	}
}

func joinKeys(keys []messages.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
