package di

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"kw3c.dev/cli/internal/application/services"
	configdomain "kw3c.dev/cli/internal/core/domain/config"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
	procports "kw3c.dev/cli/internal/core/ports/process"
	configinfra "kw3c.dev/cli/internal/infrastructure/config"
	"kw3c.dev/cli/internal/infrastructure/i18n"
	"kw3c.dev/cli/internal/infrastructure/logging"
	processinfra "kw3c.dev/cli/internal/infrastructure/process"
	"kw3c.dev/cli/internal/interfaces/cli"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	ConfigRepo *configinfra.CompositeConfigRepository
	ConfigPath string
	Settings   configdomain.Settings
	Snapshot   configdomain.Snapshot

	// Infrastructure
	BundleSource msgports.BundleSource
	Catalog      *i18n.Catalog
	Launcher     procports.Launcher

	// Application services
	LaunchService  *services.LaunchService
	CatalogService *services.CatalogService

	Logger zerolog.Logger
}

// NewContainer loads configuration and wires every component. The message
// catalog is initialized here, exactly once per process.
func NewContainer(ctx context.Context, opts cli.BootstrapOptions) (*Container, error) {
	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}

	repo := configinfra.NewDefaultRepository(opts.ConfigPath, opts.Overrides)

	settings, snap, err := repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	c := &Container{
		ConfigRepo: repo,
		ConfigPath: repo.ConfigPath(),
		Settings:   settings,
		Snapshot:   snap,
		Logger:     logging.New("kw3c", logging.LevelOrDefault(settings.LogLevel), logOutput),
	}

	c.Logger.Debug().
		Strs("sources", repo.Sources()).
		Str("config_path", c.ConfigPath).
		Msg("configuration loaded")

	c.initializeComponents(ctx)
	return c, nil
}

func (c *Container) initializeComponents(ctx context.Context) {
	// 1. Message bundles
	if c.Settings.BundleDir != "" {
		c.BundleSource = i18n.NewDirSource(c.Settings.BundleDir)
	} else {
		c.BundleSource = i18n.NewEmbeddedSource()
	}

	// 2. Catalog. A bundle that cannot be loaded leaves every lookup returning
	// its !key! marker; launching still works.
	c.Catalog = i18n.NewCatalog(c.BundleSource,
		i18n.WithPreferred(i18n.ParseLocales(c.Settings.Locale)...),
		i18n.WithLogger(c.Logger),
	)
	if err := c.Catalog.Initialize(ctx, c.Settings.Bundle); err != nil {
		c.Logger.Error().Err(err).Str("bundle", c.Settings.Bundle).Msg("message bundle unavailable")
	}

	// 3. Launcher
	c.Launcher = processinfra.NewLauncher(c.Logger)

	// 4. Application services
	c.LaunchService = services.NewLaunchService(c.Launcher, c.Catalog, services.LaunchSettings{
		InstallRoot: c.Settings.InstallRoot,
		ToolPath:    c.Settings.ToolPath,
	}, c.Logger)
	c.CatalogService = services.NewCatalogService(c.Catalog, c.BundleSource)
}

// GetCLIContainer returns the subset of dependencies the commands use
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return &cli.CLIContainer{
		LaunchService:  c.LaunchService,
		CatalogService: c.CatalogService,
		Settings:       c.Settings,
		Snapshot:       c.Snapshot,
		ConfigPath:     c.ConfigPath,
		Logger:         c.Logger,
	}
}

// Bootstrap implements cli.Bootstrapper
func Bootstrap(ctx context.Context, opts cli.BootstrapOptions) (*cli.CLIContainer, error) {
	c, err := NewContainer(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c.GetCLIContainer(), nil
}

var _ cli.Bootstrapper = Bootstrap
