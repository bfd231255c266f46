package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/ui"
)

// Options configure the folio application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath  string
	Endpoint    string
	Timeout     time.Duration // zero uses the config value unless TimeoutSet
	TimeoutSet  bool          // Timeout was given explicitly; zero then disables it
	Theme       string
	Direction   string
	LogFile     string
	MetricsAddr string
	Verbose     bool
}

// runtime is everything both entry points share.
type runtime struct {
	cfg     config.Config
	client  *catalog.Client
	metrics *catalog.Metrics
	store   *state.Store
	loader  Loader
	closer  io.Closer
}

func (r *runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Run boots the folio TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if addr := rt.cfg.MetricsAddr; addr != "" {
		if _, err := startMetrics(ctx, addr, rt.metrics.Registry); err != nil {
			return fmt.Errorf("start metrics listener: %w", err)
		}
	}

	logging.For(ctx).WithField("endpoint", rt.client.Endpoint()).Info("folio starting")

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     rt.store,
		Load:      rt.loader.Load,
		Metrics:   rt.metrics,
		ThemeName: rt.cfg.Theme,
		LogFile:   rt.cfg.LogFile,
	})
}

// List performs the same single fetch as the TUI, applies query and writes
// one "id<TAB>title" line per matching book.
func List(ctx context.Context, opts Options, query string, w io.Writer) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if err := rt.loader.Load(ctx); err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	rt.store.SetSearchText(query)

	for _, b := range rt.store.Snapshot().Filtered {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", state.RowKey(b), b.Title); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// Logs writes the last lines of the diagnostic log at minLevel or above.
// The log path comes from the same config and overrides as Run.
func Logs(opts Options, lines int, minLevel logrus.Level, w io.Writer) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		return fmt.Errorf("no log file configured")
	}
	entries, err := logging.Tail(cfg.LogFile, lines, minLevel)
	if err != nil {
		return fmt.Errorf("tail %s: %w", cfg.LogFile, err)
	}
	for _, line := range entries {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func setup(opts Options) (*runtime, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	direction, err := state.ParseDirection(cfg.Direction)
	if err != nil {
		return nil, fmt.Errorf("invalid direction: %w", err)
	}

	closer, err := logging.Setup(cfg.LogFile, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	metrics := catalog.NewMetrics()
	client, err := catalog.NewClient(cfg.Endpoint,
		catalog.WithTimeout(cfg.Timeout),
		catalog.WithMetrics(metrics))
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	store := &state.Store{}
	store.SetDirection(direction)

	return &runtime{
		cfg:     cfg,
		client:  client,
		metrics: metrics,
		store:   store,
		loader:  Loader{Fetcher: client, Store: store},
		closer:  closer,
	}, nil
}

func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load folio config: %w", err)
	}
	if v := strings.TrimSpace(opts.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if opts.TimeoutSet || opts.Timeout > 0 {
		if opts.Timeout < 0 {
			return config.Config{}, fmt.Errorf("timeout cannot be negative")
		}
		cfg.Timeout = opts.Timeout
	}
	if v := strings.TrimSpace(opts.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(opts.Direction); v != "" {
		cfg.Direction = strings.ToLower(v)
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = expanded
	}
	if v := strings.TrimSpace(opts.MetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	return cfg, nil
}
