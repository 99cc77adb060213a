package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/menulink/pkg/buildinfo"
	"github.com/matzehuels/menulink/pkg/cache"
	"github.com/matzehuels/menulink/pkg/compositor"
	"github.com/matzehuels/menulink/pkg/config"
	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/export"
	"github.com/matzehuels/menulink/pkg/integrations"
	"github.com/matzehuels/menulink/pkg/integrations/qrserver"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "menulink"

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
	cfg        *config.Config
	stdout     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level. Debug also routes compositor,
// cache and HTTP events to the log.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "menulink prints table QR codes that open a filtered menu",
		Long:          `menulink encodes restaurant table deep links (whole menu, one category, or one item) and exports them as branded, printable QR code images.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/menulink/config.toml)")

	root.AddCommand(c.linkCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// services bundles the collaborators a command needs.
type services struct {
	cfg      *config.Config
	cache    cache.Cache
	encoder  *link.Encoder
	renderer *qrserver.Renderer
	comp     *compositor.Compositor
	exporter *export.Exporter
}

func (s *services) Close() error {
	return s.cache.Close()
}

// newServices wires the encoder, QR renderer, compositor and exporter from
// config. outDir overrides the configured output directory when non-empty.
func (c *CLI) newServices(ctx context.Context, noCache bool, outDir string) (*services, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Restaurant.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err,
			"set restaurant.id in the config file or %s", config.EnvRestaurantID)
	}

	fc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}

	renderer := qrserver.NewRenderer(fc, qrserver.Options{
		Endpoint:    cfg.QR.Endpoint,
		Margin:      cfg.QR.Margin,
		PreviewSize: cfg.QR.PreviewSize,
		Timeout:     cfg.QR.Timeout,
		CacheTTL:    cfg.Cache.TTL,
	})

	// export_size defaults to the 400px print layout.
	comp := compositor.New(renderer, logoClient(cfg, fc), c.Logger)
	comp.Layout.QRSize = cfg.QR.ExportSize

	if outDir == "" {
		outDir = cfg.OutputDir
	}
	exp := export.New(comp, outDir, export.NewOSC52Clipboard(os.Stderr), export.BrowserOpener{}, c.Logger)

	return &services{
		cfg:      cfg,
		cache:    fc,
		encoder:  link.NewEncoder(cfg.BaseURL),
		renderer: renderer,
		comp:     comp,
		exporter: exp,
	}, nil
}

// logoClient fetches branding logos, cached for cache.ttl.
func logoClient(cfg *config.Config, fc cache.Cache) *integrations.Client {
	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	return integrations.NewClient(fc, "logo", cfg.Cache.TTL, headers).
		WithHTTPClient(integrations.NewHTTPClientWithTimeout(cfg.QR.Timeout))
}

// newCache builds the fetch cache selected by config. A file cache that
// cannot be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   cfg.Cache.RedisAddr,
			DB:     cfg.Cache.RedisDB,
			Prefix: appName + ":",
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Cache.RedisAddr)
		}
		return rc, nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/menulink/).
func cacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir()
}
