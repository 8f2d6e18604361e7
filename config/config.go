package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	StoreDriverAPI      = "api"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Server struct {
		Env      string `default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `default:"8080"`
		Host     string `default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"svim-availability"`
		Timezone string `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Accept,Content-Type,X-API-Key,X-Request-ID"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS" default:"60"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	// Suggestion grids start at OpenTime and advance by StepMinutes.
	Availability struct {
		OpenTime               string `envconfig:"OPEN_TIME" default:"09:00"`
		CloseTime              string `envconfig:"CLOSE_TIME" default:"18:00"`
		StepMinutes            int    `envconfig:"STEP_MINUTES" default:"30"`
		ExcludedWeekdays       []int  `envconfig:"EXCLUDED_WEEKDAYS" default:"0"`
		DefaultDurationMinutes int    `envconfig:"DEFAULT_DURATION_MINUTES" default:"30"`
		DefaultSearchDays      int    `envconfig:"DEFAULT_SEARCH_DAYS" default:"14"`
		DefaultSuggestionCount int    `envconfig:"DEFAULT_SUGGESTION_COUNT" default:"3"`
		MaxSearchDays          int    `envconfig:"MAX_SEARCH_DAYS" default:"60"`
		MaxSuggestionCount     int    `envconfig:"MAX_SUGGESTION_COUNT" default:"20"`
		MaxCandidates          int    `envconfig:"MAX_CANDIDATES" default:"10"`
		MaxEligibleStaff       int    `envconfig:"MAX_ELIGIBLE_STAFF" default:"10"`
		EligibilityConcurrency int    `envconfig:"ELIGIBILITY_CONCURRENCY" default:"4"`
	} `envconfig:"AVAILABILITY"`

	Store struct {
		Driver string `envconfig:"DRIVER" default:"api"`
		API    struct {
			BaseURL        string `envconfig:"BASE_URL" default:"http://localhost:8000"`
			Key            string `envconfig:"KEY"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
			PageSize       int    `envconfig:"PAGE_SIZE" default:"100"`
			MaxPages       int    `envconfig:"MAX_PAGES" default:"20"`
		} `envconfig:"API"`
	} `envconfig:"STORE"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `default:"localhost"`
				Port     string `default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"60"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY" default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			Prefix         string `envconfig:"PREFIX"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			Read           struct {
				Host     string
				Port     string
				User     string
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string
				Port     string
				User     string
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Metrics struct {
		Enable bool   `envconfig:"ENABLE" default:"true"`
		Path   string `default:"/metrics"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		conf, err = Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Str("storeDriver", conf.Store.Driver).Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	return nil
}

// Load reads the configuration from the environment without touching the
// process-wide instance.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
