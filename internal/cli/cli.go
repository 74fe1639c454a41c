// Package cli implements the imgx command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zzaoclub/imgx/pkg/buildinfo"
	"github.com/zzaoclub/imgx/pkg/cache"
	"github.com/zzaoclub/imgx/pkg/fonts"
	"github.com/zzaoclub/imgx/pkg/httputil"
	"github.com/zzaoclub/imgx/pkg/icons"
	"github.com/zzaoclub/imgx/pkg/imagegen"
	"github.com/zzaoclub/imgx/pkg/preset"
	"github.com/zzaoclub/imgx/pkg/render"
	"github.com/zzaoclub/imgx/pkg/template"
)

// appName is the application name used for directories and display.
const appName = "imgx"

// iconCacheTTL is how long fetched icon glyphs stay valid on disk. Glyphs
// are immutable in practice, so the TTL is generous.
const iconCacheTTL = 30 * 24 * time.Hour

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "imgx",
		Short:        "Imgx renders parameterized cover images from presets",
		Long:         `Imgx is a cover-image rendering service: presets define templates, dimensions and default styling, and URLs or the CLI supply text and style overrides that render to SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configured (or default) config file.
func (c *CLI) loadConfig() (Config, error) {
	return LoadConfig(c.configPath)
}

// buildGenerator wires a Generator from config. The returned closer releases
// store and cache connections.
func (c *CLI) buildGenerator(ctx context.Context, cfg Config) (*imagegen.Generator, preset.Store, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := c.newPresetStore(ctx, cfg, &closers)
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}

	renderCache, err := newRenderCache(ctx, cfg, &closers)
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}

	iconClient, err := c.newIconClient(cfg)
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}

	gen := imagegen.New(imagegen.Config{
		Presets:    store,
		Icons:      iconClient,
		Templates:  template.NewAdapter(template.NewRegistry(), iconClient, c.Logger),
		Rasterizer: render.RsvgRasterizer{},
		Cache:      renderCache,
		FontLoader: fonts.NewLoader(cfg.Fonts.Dir),
		Logger:     c.Logger,
	})
	return gen, store, closeAll, nil
}

func (c *CLI) newPresetStore(ctx context.Context, cfg Config, closers *[]func()) (preset.Store, error) {
	if cfg.Presets.MongoURI != "" {
		store, err := preset.NewMongoStore(ctx, preset.MongoConfig{
			URI:        cfg.Presets.MongoURI,
			Database:   cfg.Presets.MongoDatabase,
			Collection: cfg.Presets.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = store.Close(context.Background()) })
		return preset.NewCached(store), nil
	}
	return preset.NewCached(preset.NewFileStore(cfg.Presets.Dir)), nil
}

func newRenderCache(ctx context.Context, cfg Config, closers *[]func()) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = rc.Close() })
		return rc, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = filepath.Join(d, "render")
		}
		return cache.NewFileCache(dir)
	}
}

func (c *CLI) newIconClient(cfg Config) (*icons.Client, error) {
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	} else {
		dir = filepath.Join(dir, "icons")
	}
	iconCache, err := httputil.NewCache(dir, iconCacheTTL)
	if err != nil {
		return nil, err
	}
	opts := []icons.Option{icons.WithLogger(c.Logger)}
	if cfg.Icons.BaseURL != "" {
		opts = append(opts, icons.WithBaseURL(cfg.Icons.BaseURL))
	}
	return icons.NewClient(iconCache, opts...), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/imgx/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
