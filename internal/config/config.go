package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the pipeline needs for one run. All values
// can come from a config file or VARTHA_* environment variables; no
// credential or endpoint is hardcoded.
type Config struct {
	LogLevel string

	RNZSitemapURL      string
	NZHeraldSitemapURL string
	OneNewsSitemapURL  string

	StorePath      string
	PublishersFile string

	BatchSize   int
	NodeWorkers int
	HTTPTimeout time.Duration
}

// Load reads an optional .env file, an optional vartha.yaml in the
// working directory, and environment overrides.
func Load() (Config, error) {
	// Missing .env is fine; it only serves local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("VARTHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("sitemaps.rnz", "https://www.rnz.co.nz/sitemap-news")
	v.SetDefault("sitemaps.nzherald", "https://www.nzherald.co.nz/arcio/sitemap/")
	v.SetDefault("sitemaps.onenews", "https://www.1news.co.nz/arc/outboundfeeds/news-sitemap/")
	v.SetDefault("store.path", "vartha.db")
	v.SetDefault("publishers.file", "")
	v.SetDefault("pipeline.batch_size", 100)
	v.SetDefault("pipeline.node_workers", 32)
	v.SetDefault("http.timeout", "15s")

	v.SetConfigName("vartha")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		LogLevel:           v.GetString("log.level"),
		RNZSitemapURL:      v.GetString("sitemaps.rnz"),
		NZHeraldSitemapURL: v.GetString("sitemaps.nzherald"),
		OneNewsSitemapURL:  v.GetString("sitemaps.onenews"),
		StorePath:          v.GetString("store.path"),
		PublishersFile:     v.GetString("publishers.file"),
		BatchSize:          v.GetInt("pipeline.batch_size"),
		NodeWorkers:        v.GetInt("pipeline.node_workers"),
		HTTPTimeout:        v.GetDuration("http.timeout"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.RNZSitemapURL) == "" {
		return fmt.Errorf("sitemaps.rnz must not be empty")
	}
	if strings.TrimSpace(c.NZHeraldSitemapURL) == "" {
		return fmt.Errorf("sitemaps.nzherald must not be empty")
	}
	if strings.TrimSpace(c.OneNewsSitemapURL) == "" {
		return fmt.Errorf("sitemaps.onenews must not be empty")
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("pipeline.batch_size must be positive, got %d", c.BatchSize)
	}
	if c.NodeWorkers < 1 {
		return fmt.Errorf("pipeline.node_workers must be positive, got %d", c.NodeWorkers)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
