package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackforge/pkg/buildinfo"
	"github.com/matzehuels/stackforge/pkg/cache"
	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/config"
	"github.com/matzehuels/stackforge/pkg/errors"
	"github.com/matzehuels/stackforge/pkg/integrations/gradle"
	"github.com/matzehuels/stackforge/pkg/integrations/maven"
	"github.com/matzehuels/stackforge/pkg/versions"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	out        io.Writer // descriptor and listing output
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "stackforge",
		Short:         "Stackforge composes Maven and Gradle build descriptors from feature flags",
		Long:          `Stackforge merges the dependencies, plugins, templates and properties contributed by a set of selected features into a single Maven or Gradle build descriptor, resolving "latest version" placeholders against Maven Central and the Gradle Plugin Portal.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.composeCommand())
	root.AddCommand(c.featuresCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "catalog", cfg.Catalog, "cache", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	return cfg, nil
}

func loadCatalog(path string) (compose.MapCatalog, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no feature catalog: pass --catalog or set catalog in the config file")
	}
	return compose.LoadCatalog(path)
}

// openCache opens the configured cache backend, or a null cache when
// noCache is set.
func openCache(cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	c, err := cache.Open(cfg.CacheOptions())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s cache", cfg.Cache.Backend)
	}
	return c, nil
}

// newResolver wires the registry clients behind a versions.Resolver.
func newResolver(cfg config.Config, c cache.Cache, refresh bool, logger *log.Logger) *versions.Resolver {
	mavenClient := maven.NewClient(c, cfg.Cache.TTL, cfg.MavenOptions()...)
	pluginClient := gradle.NewClient(c, cfg.Cache.TTL, cfg.Registries.PluginPortalURL)
	pluginClient.SetKeyer(cache.NewKeyer(cfg.Cache.KeyPrefix))

	return versions.New(mavenClient, pluginClient, versions.Options{
		Refresh: refresh,
		Logger:  logger.Debugf,
	})
}
