package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// LedgerConfig holds XRPL ledger gateway configuration
type LedgerConfig struct {
	// RPCURL is the rippled JSON-RPC endpoint
	RPCURL string `mapstructure:"rpc_url"`
	// MerchantAddress receives tile payments and acts as the minting authority
	MerchantAddress string `mapstructure:"merchant_address"`
	// MerchantSeed signs escrow-finish, mint and offer transactions
	MerchantSeed string `mapstructure:"merchant_seed"`
	// HTTPTimeout bounds a single JSON-RPC round trip
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// SubmitWaitTimeout bounds the post-submit validation poll
	SubmitWaitTimeout time.Duration `mapstructure:"submit_wait_timeout"`
}

// TilesConfig holds tile acquisition configuration
type TilesConfig struct {
	// PriceDrops is the tile price in XRP drops, matched exactly during verification
	PriceDrops string `mapstructure:"price_drops"`
	// PublicBaseURL is the externally reachable base URL of this service,
	// used to build NFT metadata URIs and tile image URLs
	PublicBaseURL string `mapstructure:"public_base_url"`
	// MintWorkers bounds the pool running detached mint tasks
	MintWorkers int `mapstructure:"mint_workers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// AllowedOrigins restricts CORS; empty allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EscrowSweeperConfig holds configuration for the escrow maturation sweeper
type EscrowSweeperConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	WorkerPoolSize int           `mapstructure:"worker_pool_size"`
	BatchSize      int           `mapstructure:"batch_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig        `mapstructure:"server"`
	Database   DatabaseConfig      `mapstructure:"database"`
	Ledger     LedgerConfig        `mapstructure:"ledger"`
	Tiles      TilesConfig         `mapstructure:"tiles"`
	Sweeper    EscrowSweeperConfig `mapstructure:"sweeper"`
}

// SweeperConfig holds configuration for the standalone sweeper process
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig      `mapstructure:"database"`
	Ledger     LedgerConfig        `mapstructure:"ledger"`
	Tiles      TilesConfig         `mapstructure:"tiles"`
	Sweeper    EscrowSweeperConfig `mapstructure:"sweeper"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(cfg.Database, cfg.Ledger); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the standalone sweeper process
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(cfg.Database, cfg.Ledger); err != nil {
		return nil, err
	}
	if cfg.Ledger.MerchantSeed == "" {
		return nil, errors.New("ledger.merchant_seed is required")
	}

	return &cfg, nil
}

// setCommonDefaults sets defaults shared by every binary
func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("ledger.rpc_url", "https://s.altnet.rippletest.net:51234")
	v.SetDefault("ledger.http_timeout", "30s")
	v.SetDefault("ledger.submit_wait_timeout", "20s")
	v.SetDefault("tiles.price_drops", "10000000") // 10 XRP
	v.SetDefault("tiles.public_base_url", "http://localhost:8080")
	v.SetDefault("tiles.mint_workers", 4)
	v.SetDefault("sweeper.interval", "1m")
	v.SetDefault("sweeper.worker_pool_size", 8)
	v.SetDefault("sweeper.batch_size", 100)
}

// readConfig reads the config file, tolerating a missing file (env-only setups)
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// validateCommon checks required fields shared by every binary
func validateCommon(db DatabaseConfig, ledger LedgerConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if ledger.MerchantAddress == "" {
		return errors.New("ledger.merchant_address is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("HEXEARTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Ledger
		"ledger.rpc_url",
		"ledger.merchant_address",
		"ledger.merchant_seed",
		"ledger.http_timeout",
		"ledger.submit_wait_timeout",
		// Tiles
		"tiles.price_drops",
		"tiles.public_base_url",
		"tiles.mint_workers",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Sweeper
		"sweeper.interval",
		"sweeper.worker_pool_size",
		"sweeper.batch_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
