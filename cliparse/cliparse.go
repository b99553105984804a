package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = 3318
	defaultEnvFile         = ".env"
	defaultSQLiteURL       = "file:callcampaign.db"
	defaultDirectoryTTL    = 10 * time.Minute
	defaultUpstreamTimeout = 5 * time.Second
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	UpstreamURL     string
	SessionKeySalt  string
	DirectoryTTL    time.Duration
	UpstreamTimeout time.Duration
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fset := flag.NewFlagSet("callcampaign", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fset.StringVar(&cfg.UpstreamURL, "u", "", "Campaign API base URL")
	fset.DurationVar(&cfg.DirectoryTTL, "directory-ttl", 0, "How long the district directory is cached")
	fset.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", 0, "Campaign API request timeout")
	fset.StringVar(&envFile, "env-file", "", "Dotenv file to load (default .env if present)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.SessionKeySalt, "session-salt", "", "Session key salt (prefer env)")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = os.Getenv("UPSTREAM_URL")
	}
	if cfg.UpstreamURL == "" {
		return Config{}, errors.New("campaign API URL required (use -u or UPSTREAM_URL env)")
	}

	var err error
	if cfg.DirectoryTTL, err = durationFromEnv(cfg.DirectoryTTL, "DIRECTORY_TTL", defaultDirectoryTTL); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamTimeout, err = durationFromEnv(cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT", defaultUpstreamTimeout); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.SessionKeySalt == "" {
		cfg.SessionKeySalt = os.Getenv("SESSION_KEY_SALT")
	}
	if cfg.SessionKeySalt == "" {
		return Config{}, errors.New("SESSION_KEY_SALT required")
	}

	return cfg, nil
}

// loadEnvFile loads a dotenv file without overriding variables already set.
// A missing default file is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func durationFromEnv(current time.Duration, key string, fallback time.Duration) (time.Duration, error) {
	if current > 0 {
		return current, nil
	}
	if s := os.Getenv(key); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid %s env variable", key)
		}
		return d, nil
	}
	return fallback, nil
}
