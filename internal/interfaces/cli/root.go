package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"kw3c.dev/cli/internal/application/services"
	configdomain "kw3c.dev/cli/internal/core/domain/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	LaunchService  *services.LaunchService
	CatalogService *services.CatalogService
	Settings       configdomain.Settings
	Snapshot       configdomain.Snapshot
	ConfigPath     string
	Logger         zerolog.Logger
}

// BootstrapOptions carries the global flags into container construction
type BootstrapOptions struct {
	ConfigPath string
	Overrides  map[string]interface{}
	LogOutput  io.Writer
}

// Bootstrapper builds the CLI dependencies once flags are parsed
type Bootstrapper func(ctx context.Context, opts BootstrapOptions) (*CLIContainer, error)

// exitError ends the process with code after the command already printed
// everything the user needs to see.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// globalFlags are bound to the root command's persistent flags
type globalFlags struct {
	configPath  string
	installRoot string
	locale      string
	logLevel    string
	bundleDir   string
}

func (f *globalFlags) overrides() map[string]interface{} {
	return map[string]interface{}{
		configdomain.FieldInstallRoot: f.installRoot,
		configdomain.FieldLocale:      f.locale,
		configdomain.FieldLogLevel:    f.logLevel,
		configdomain.FieldBundleDir:   f.bundleDir,
	}
}

// app lazily bootstraps the container the first time a command needs it,
// so that flags are parsed first and `version` works without configuration.
type app struct {
	bootstrap Bootstrapper
	flags     globalFlags
	container *CLIContainer
}

func (a *app) load(cmd *cobra.Command) (*CLIContainer, error) {
	if a.container != nil {
		return a.container, nil
	}
	if a.bootstrap == nil {
		return nil, errors.New("no bootstrapper configured")
	}
	container, err := a.bootstrap(cmd.Context(), BootstrapOptions{
		ConfigPath: a.flags.configPath,
		Overrides:  a.flags.overrides(),
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	a.container = container
	return container, nil
}

// NewRootCommand creates the kw3c root command
func NewRootCommand(bootstrap Bootstrapper) *cobra.Command {
	a := &app{bootstrap: bootstrap}

	rootCmd := &cobra.Command{
		Use:   "kw3c",
		Short: "KW3C validator launcher",
		Long: `kw3c starts the KW3C validator bundled with the installation and
shows its status in the user's language.

The validator is started detached: kw3c does not wait for it, capture its
output or watch over it once it is running.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(versionText())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "Config file path (default is $XDG_CONFIG_HOME/kw3c/config.toml)")
	flags.StringVar(&a.flags.installRoot, "install-root", "", "Installation root the validator is resolved against")
	flags.StringVar(&a.flags.locale, "locale", "", "Message locale, e.g. en or ko-KR")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	flags.StringVar(&a.flags.bundleDir, "bundle-dir", "", "Directory with message bundles replacing the built-in ones")

	rootCmd.AddCommand(newLaunchCommand(a))
	rootCmd.AddCommand(newResolveCommand(a))
	rootCmd.AddCommand(newMessagesCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
			return nil
		},
	}
}

func versionText() string {
	return fmt.Sprintf("kw3c version %s\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		Version, BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH)
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Run executes the command line and returns the process exit code
func Run(ctx context.Context, bootstrap Bootstrapper, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(bootstrap)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
	return 1
}
