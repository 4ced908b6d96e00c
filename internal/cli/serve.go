package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclecut/pkg/api"
	"github.com/matzehuels/cyclecut/pkg/cache"
	"github.com/matzehuels/cyclecut/pkg/observability"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
	"github.com/matzehuels/cyclecut/pkg/store"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr         string
	mongoURI     string
	redisURL     string
	noCache      bool
	noMetrics    bool
	solveTimeout time.Duration
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Solutions are cached in Redis when --redis-url (or CYCLECUT_REDIS_URL) is
set, otherwise in the local cache directory. Runs are kept in MongoDB when
--mongo-uri (or CYCLECUT_MONGO_URI) is set, otherwise in memory.

Prometheus metrics are served at /metrics unless --no-metrics is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for the run store")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the shared cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "do not serve /metrics")
	cmd.Flags().DurationVar(&opts.solveTimeout, "solve-timeout", api.DefaultSolveTimeout, "upper bound on a single solve")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cmd *cobra.Command, opts serveOpts) error {
	cfg := c.cfg()
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if !changed("addr") && cfg.Server.Addr != "" {
		opts.addr = cfg.Server.Addr
	}
	if opts.mongoURI == "" {
		opts.mongoURI = cfg.Server.mongoURI()
	}
	if opts.redisURL != "" {
		cfg.Cache.RedisURL = opts.redisURL
	}
	if !changed("solve-timeout") {
		if d, _ := parseDuration(cfg.Server.SolveTimeout); d > 0 {
			opts.solveTimeout = d
		}
	}
	if !changed("no-metrics") && !cfg.Server.metricsEnabled() {
		opts.noMetrics = true
	}

	resultCache, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(resultCache, cache.NewScopedKeyer(nil, "api:"), c.Logger)
	defer runner.Close()

	var st store.Store
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI, Database: cfg.Server.MongoDatabase})
		if err != nil {
			return fmt.Errorf("connect to mongo: %w", err)
		}
		st = ms
		c.Logger.Info("using mongo run store", "database", cfg.Server.MongoDatabase)
	} else {
		st = store.NewMemoryStore(0)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("close run store", "error", err)
		}
	}()

	apiCfg := api.Config{
		Runner:       runner,
		Store:        st,
		Logger:       c.Logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		SolveTimeout: opts.solveTimeout,
	}
	if !opts.noMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := observability.NewMetrics(reg)
		observability.SetSolveHooks(m)
		observability.SetCacheHooks(m)
		observability.SetHTTPHooks(m)
		defer observability.Reset()
		apiCfg.Metrics = m.Handler()
	}

	printInfo("Serving on %s", StyleNumber.Render(opts.addr))
	return api.New(apiCfg).ListenAndServe(ctx, opts.addr)
}
