package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a jobsweep run. Loaded once at
// startup and read-only afterwards.
type Config struct {
	Filters     FilterConfig
	Sources     SourcesConfig
	Slack       SlackConfig
	Delivery    DeliveryConfig
	Retry       RetryConfig
	RateLimit   RateLimitConfig
	History     HistoryConfig
	HTTPTimeout time.Duration
}

// FilterConfig holds the keyword sets and recency window every adapter
// filters against.
type FilterConfig struct {
	RoleKeywords       []string
	LocationKeywords   []string
	ExperienceKeywords []string
	Window             time.Duration // max age of a posting to be considered fresh
}

// BoardConfig describes a single company board on a multi-tenant ATS.
type BoardConfig struct {
	Slug string `yaml:"slug"` // board token / company slug in the ATS URL
	Name string `yaml:"name"` // display name used for the Company field
}

// SourcesConfig selects which origins contribute to a run.
type SourcesConfig struct {
	Remotive         bool          `yaml:"remotive"`
	ArbeitNow        bool          `yaml:"arbeitnow"`
	WeWorkRemotely   bool          `yaml:"weworkremotely"`
	LeverBoards      []BoardConfig `yaml:"lever_boards"`
	GreenhouseBoards []BoardConfig `yaml:"greenhouse_boards"`
	LinkedInKeywords []string      `yaml:"linkedin_keywords"`
}

// SlackConfig carries the delivery channel credentials. Both fields empty is
// legal: delivery degrades to a logged no-op.
type SlackConfig struct {
	Token   string `yaml:"token"`   // bot token, usually ${SLACK_BOT_TOKEN}
	Channel string `yaml:"channel"` // channel ID to post into
}

// DeliveryConfig controls pagination of the outbound messages.
type DeliveryConfig struct {
	PageSize int // job entries per threaded page
	MaxJobs  int // overall cap before rendering
}

// RetryConfig controls the transient-failure retry wrapper around source
// fetches. Delivery is never retried.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// RateLimitConfig spaces out consecutive requests to the same origin inside
// multi-request adapters.
type RateLimitConfig struct {
	MinDelay time.Duration
}

// HistoryConfig points at the run-history database. Empty path disables it.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings).
type rawConfig struct {
	Filters struct {
		RoleKeywords       []string `yaml:"role_keywords"`
		LocationKeywords   []string `yaml:"location_keywords"`
		ExperienceKeywords []string `yaml:"experience_keywords"`
		Window             string   `yaml:"window"`
	} `yaml:"filters"`
	Sources struct {
		Remotive         *bool         `yaml:"remotive"`
		ArbeitNow        *bool         `yaml:"arbeitnow"`
		WeWorkRemotely   *bool         `yaml:"weworkremotely"`
		LeverBoards      []BoardConfig `yaml:"lever_boards"`
		GreenhouseBoards []BoardConfig `yaml:"greenhouse_boards"`
		LinkedInKeywords []string      `yaml:"linkedin_keywords"`
	} `yaml:"sources"`
	Slack SlackConfig `yaml:"slack"`
	Delivery struct {
		PageSize int `yaml:"page_size"`
		MaxJobs  int `yaml:"max_jobs"`
	} `yaml:"delivery"`
	Retry struct {
		MaxRetries *int   `yaml:"max_retries"`
		BaseDelay  string `yaml:"base_delay"`
	} `yaml:"retry"`
	RateLimit struct {
		MinDelay string `yaml:"min_delay"`
	} `yaml:"rate_limit"`
	History     HistoryConfig `yaml:"history"`
	HTTPTimeout string        `yaml:"http_timeout"`
}

// Default returns the built-in configuration: cloud/devops entry-level roles,
// the public API sources enabled, Slack credentials pulled from the
// environment.
func Default() *Config {
	return &Config{
		Filters: FilterConfig{
			RoleKeywords: []string{
				"aws cloud engineer", "cloud engineer", "devops engineer",
				"cloud support", "cloud operations", "infrastructure engineer",
				"cloud associate", "aws associate",
			},
			LocationKeywords: []string{
				"remote", "bengaluru", "bangalore", "mysore", "chennai",
				"coimbatore", "kochi", "calicut", "kozhikode",
			},
			ExperienceKeywords: []string{
				"0-1", "entry", "junior", "fresher", "0 years", "1 year", "0 to 1",
			},
			Window: 48 * time.Hour,
		},
		Sources: SourcesConfig{
			Remotive:       true,
			ArbeitNow:      true,
			WeWorkRemotely: true,
		},
		Slack: SlackConfig{
			Token:   os.Getenv("SLACK_BOT_TOKEN"),
			Channel: os.Getenv("SLACK_CHANNEL"),
		},
		Delivery:    DeliveryConfig{PageSize: 8, MaxJobs: 40},
		Retry:       RetryConfig{MaxRetries: 1, BaseDelay: 5 * time.Second},
		RateLimit:   RateLimitConfig{MinDelay: 1 * time.Second},
		HTTPTimeout: 20 * time.Second,
	}
}

// Load reads and parses the YAML config file at path, expands environment
// variables, fills defaults for anything unset, validates, and returns the
// Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand ${SLACK_BOT_TOKEN} and friends before unmarshaling.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Filters.RoleKeywords != nil {
		cfg.Filters.RoleKeywords = raw.Filters.RoleKeywords
	}
	if raw.Filters.LocationKeywords != nil {
		cfg.Filters.LocationKeywords = raw.Filters.LocationKeywords
	}
	if raw.Filters.ExperienceKeywords != nil {
		cfg.Filters.ExperienceKeywords = raw.Filters.ExperienceKeywords
	}
	if raw.Filters.Window != "" {
		cfg.Filters.Window, err = time.ParseDuration(raw.Filters.Window)
		if err != nil {
			return nil, fmt.Errorf("parse filters.window %q: %w", raw.Filters.Window, err)
		}
	}

	if raw.Sources.Remotive != nil {
		cfg.Sources.Remotive = *raw.Sources.Remotive
	}
	if raw.Sources.ArbeitNow != nil {
		cfg.Sources.ArbeitNow = *raw.Sources.ArbeitNow
	}
	if raw.Sources.WeWorkRemotely != nil {
		cfg.Sources.WeWorkRemotely = *raw.Sources.WeWorkRemotely
	}
	cfg.Sources.LeverBoards = raw.Sources.LeverBoards
	cfg.Sources.GreenhouseBoards = raw.Sources.GreenhouseBoards
	cfg.Sources.LinkedInKeywords = raw.Sources.LinkedInKeywords

	if raw.Slack.Token != "" {
		cfg.Slack.Token = raw.Slack.Token
	}
	if raw.Slack.Channel != "" {
		cfg.Slack.Channel = raw.Slack.Channel
	}

	if raw.Delivery.PageSize != 0 {
		cfg.Delivery.PageSize = raw.Delivery.PageSize
	}
	if raw.Delivery.MaxJobs != 0 {
		cfg.Delivery.MaxJobs = raw.Delivery.MaxJobs
	}

	if raw.Retry.MaxRetries != nil {
		cfg.Retry.MaxRetries = *raw.Retry.MaxRetries
	}
	if raw.Retry.BaseDelay != "" {
		cfg.Retry.BaseDelay, err = time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
	}

	if raw.RateLimit.MinDelay != "" {
		cfg.RateLimit.MinDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}

	cfg.History = raw.History

	if raw.HTTPTimeout != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse http_timeout %q: %w", raw.HTTPTimeout, err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Filters.RoleKeywords) == 0 {
		return fmt.Errorf("filters.role_keywords must not be empty")
	}
	if cfg.Filters.Window <= 0 {
		return fmt.Errorf("filters.window must be positive, got %v", cfg.Filters.Window)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.Delivery.PageSize <= 0 {
		return fmt.Errorf("delivery.page_size must be positive, got %d", cfg.Delivery.PageSize)
	}
	if cfg.Delivery.MaxJobs <= 0 {
		return fmt.Errorf("delivery.max_jobs must be positive, got %d", cfg.Delivery.MaxJobs)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	return nil
}
