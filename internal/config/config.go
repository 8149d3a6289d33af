package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// MLB Stats API (game index and line scores)
	StatsAPIBaseURL string        `envconfig:"STATSAPI_BASE_URL" default:"https://statsapi.mlb.com" validate:"required,url"`
	SportID         int           `envconfig:"SPORT_ID" default:"1" validate:"min=1"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
	UserAgent       string        `envconfig:"USER_AGENT" default:"mlb-scenarios/1.0" validate:"required"`

	// Baseball-Reference (schedule listing)
	ScheduleBaseURL string `envconfig:"SCHEDULE_BASE_URL" default:"https://www.baseball-reference.com" validate:"required,url"`

	// Seasons
	SeasonStartYear   int      `envconfig:"SEASON_START_YEAR" default:"2011" validate:"min=1876"`
	SeasonEndYear     int      `envconfig:"SEASON_END_YEAR" default:"2023" validate:"min=1876"`
	SeasonWindowStart string   `envconfig:"SEASON_WINDOW_START" default:"03-01" validate:"required"`
	SeasonWindowEnd   string   `envconfig:"SEASON_WINDOW_END" default:"11-15" validate:"required"`
	Teams             []string `envconfig:"TEAMS"` // Empty means every known team

	// Output
	ScenarioDir    string `envconfig:"SCENARIO_DIR" default:"team_scenarios" validate:"required"`
	SummaryDir     string `envconfig:"SUMMARY_DIR" default:"team_data" validate:"required"`
	ExportWorkbook bool   `envconfig:"EXPORT_WORKBOOK" default:"false"`

	// Merge
	MergeConflictPolicy string `envconfig:"MERGE_CONFLICT_POLICY" default:"keep-first" validate:"oneof=keep-first error"`

	// Redis response cache
	CacheEnabled  bool          `envconfig:"CACHE_ENABLED" default:"false"`
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"720h"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production test"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"false"`
	RunOnStart      bool   `envconfig:"RUN_ON_START" default:"true"`
	PipelineCron    string `envconfig:"PIPELINE_CRON" default:"0 4 * * *"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090" validate:"min=1,max=65535"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.SeasonEndYear < c.SeasonStartYear {
		return fmt.Errorf("SEASON_END_YEAR (%d) is before SEASON_START_YEAR (%d)", c.SeasonEndYear, c.SeasonStartYear)
	}

	for _, year := range c.Years() {
		if _, err := c.WindowFor(year); err != nil {
			return fmt.Errorf("season %d: %w", year, err)
		}
	}

	if c.EnableScheduler && strings.TrimSpace(c.PipelineCron) == "" {
		return fmt.Errorf("PIPELINE_CRON is required when ENABLE_SCHEDULER is set")
	}

	return nil
}

// Years returns every season in the configured range, inclusive
func (c *Config) Years() []int {
	years := make([]int, 0, c.SeasonEndYear-c.SeasonStartYear+1)
	for y := c.SeasonStartYear; y <= c.SeasonEndYear; y++ {
		years = append(years, y)
	}
	return years
}

// SeasonWindow is the date range queried from the game index for one season
type SeasonWindow struct {
	Start time.Time
	End   time.Time
}

// WindowFor resolves the MM-DD window bounds against a season year
func (c *Config) WindowFor(year int) (SeasonWindow, error) {
	start, err := time.Parse("2006-01-02", fmt.Sprintf("%d-%s", year, c.SeasonWindowStart))
	if err != nil {
		return SeasonWindow{}, fmt.Errorf("invalid SEASON_WINDOW_START %q: %w", c.SeasonWindowStart, err)
	}
	end, err := time.Parse("2006-01-02", fmt.Sprintf("%d-%s", year, c.SeasonWindowEnd))
	if err != nil {
		return SeasonWindow{}, fmt.Errorf("invalid SEASON_WINDOW_END %q: %w", c.SeasonWindowEnd, err)
	}
	if end.Before(start) {
		return SeasonWindow{}, fmt.Errorf("season window ends (%s) before it starts (%s)", c.SeasonWindowEnd, c.SeasonWindowStart)
	}
	return SeasonWindow{Start: start, End: end}, nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
