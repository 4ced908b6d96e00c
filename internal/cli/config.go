package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclecut/pkg/pipeline"
)

// Config is the optional TOML config file. Zero values mean "not set".
//
// Example:
//
//	[solver]
//	strategy = "degree"
//	restarts = 4
//	timeout = "30s"
//
//	[render]
//	formats = ["svg"]
//	labels = true
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SolverConfig holds solver defaults.
type SolverConfig struct {
	Strategy       string  `toml:"strategy"`
	Seed           int64   `toml:"seed"`
	Temperature    float64 `toml:"temperature"`
	CoolingRate    float64 `toml:"cooling_rate"`
	MinTemperature float64 `toml:"min_temperature"`
	Iterations     int     `toml:"iterations"`
	MaxRounds      int     `toml:"max_rounds"`
	Restarts       int     `toml:"restarts"`
	SkipAnnealing  bool    `toml:"skip_annealing"`
	Timeout        string  `toml:"timeout"`
}

// RenderConfig holds drawing defaults.
type RenderConfig struct {
	Formats   []string `toml:"formats"`
	Width     float64  `toml:"width"`
	Scale     float64  `toml:"scale"`
	Labels    bool     `toml:"labels"`
	HideEdges bool     `toml:"hide_edges"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures "serve".
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	SolveTimeout  string `toml:"solve_timeout"`
	MaxBodyBytes  int64  `toml:"max_body_bytes"`
	Metrics       *bool  `toml:"metrics"`
}

// redisURL returns the Redis URL from the environment or the file.
func (c CacheConfig) redisURL() string {
	if url := os.Getenv(envRedisURL); url != "" {
		return url
	}
	return c.RedisURL
}

// mongoURI returns the MongoDB URI from the environment or the file.
func (s ServerConfig) mongoURI() string {
	if uri := os.Getenv(envMongoURI); uri != "" {
		return uri
	}
	return s.MongoURI
}

// metricsEnabled defaults to true.
func (s ServerConfig) metricsEnabled() bool {
	return s.Metrics == nil || *s.Metrics
}

// loadConfig reads the config file. A missing default file is not an error;
// a missing explicit --config file is.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			c.config = &Config{}
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg, err := readConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			c.config = &Config{}
			return nil
		}
		return err
	}
	c.Logger.Debug("loaded config", "path", path)
	c.config = cfg
	return nil
}

// readConfig decodes and checks a config file. Unknown keys are rejected so
// typos do not go unnoticed.
func readConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := parseDuration(cfg.Solver.Timeout); err != nil {
		return nil, fmt.Errorf("config %s: solver.timeout: %w", path, err)
	}
	if _, err := parseDuration(cfg.Server.SolveTimeout); err != nil {
		return nil, fmt.Errorf("config %s: server.solve_timeout: %w", path, err)
	}
	return &cfg, nil
}

// parseDuration treats the empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// applySolver fills solver options from the config wherever the matching
// flag was not given on the command line.
func (s SolverConfig) applySolver(cmd *cobra.Command, opts *pipeline.Options) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f == nil || !f.Changed
	}
	if unset("strategy") && s.Strategy != "" {
		opts.Strategy = s.Strategy
	}
	if unset("seed") && s.Seed != 0 {
		opts.Seed = s.Seed
	}
	if unset("temperature") && s.Temperature != 0 {
		opts.Temperature = s.Temperature
	}
	if unset("cooling-rate") && s.CoolingRate != 0 {
		opts.CoolingRate = s.CoolingRate
	}
	if unset("min-temperature") && s.MinTemperature != 0 {
		opts.MinTemperature = s.MinTemperature
	}
	if unset("iterations") && s.Iterations != 0 {
		opts.Iterations = s.Iterations
	}
	if unset("max-rounds") && s.MaxRounds != 0 {
		opts.MaxRounds = s.MaxRounds
	}
	if unset("restarts") && s.Restarts != 0 {
		opts.Restarts = s.Restarts
	}
	if unset("skip-annealing") && s.SkipAnnealing {
		opts.SkipAnnealing = true
	}
	if unset("timeout") {
		if d, err := parseDuration(s.Timeout); err == nil && d > 0 {
			opts.Timeout = d
		}
	}
}

// applyRender fills render options from the config wherever the matching
// flag was not given on the command line.
func (r RenderConfig) applyRender(cmd *cobra.Command, opts *pipeline.Options) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f == nil || !f.Changed
	}
	if unset("format") && len(r.Formats) > 0 {
		opts.Formats = append([]string(nil), r.Formats...)
	}
	if unset("width") && r.Width != 0 {
		opts.Width = r.Width
	}
	if unset("scale") && r.Scale != 0 {
		opts.Scale = r.Scale
	}
	if unset("labels") && r.Labels {
		opts.Labels = true
	}
	if unset("hide-edges") && r.HideEdges {
		opts.HideEdges = true
	}
}
