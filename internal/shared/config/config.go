package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"planet-randomizer/internal/generator"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Generator GeneratorConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TrustProxy   bool // take client IPs from X-Forwarded-For
}

type DatabaseConfig struct {
	Driver          string // postgres or sqlite3
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	Path            string // sqlite3 database file
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

type FrontendConfig struct {
	URL       string // comma-separated list of allowed origins
	CORSDebug bool
}

// Origins splits URL into the individual allowed origins.
func (f FrontendConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(f.URL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

type GeneratorConfig struct {
	Tunables     generator.Config
	BaselinePath string // empty selects the built-in Kerbol system
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

var GlobalConfig *Config

// Init loads .env and the environment, validates the result and stores it in GlobalConfig.
func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := Load()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment without validating it.
func Load() *Config {
	return &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Auth:      loadAuthConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Generator: loadGeneratorConfig(),
		Metrics:   loadMetricsConfig(),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		URL:          getEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:  time.Duration(getEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
		TrustProxy:   getEnvBool("SERVER_TRUST_PROXY", false),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "postgres"),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		Name:            getEnv("DB_NAME", "planet_randomizer"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		Path:            getEnv("DB_PATH", "planet-randomizer.db"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", true),
		URL:      getEnv("REDIS_URL", ""),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		TTL:      time.Duration(getEnvInt("REDIS_TTL_MINUTES", 60)) * time.Minute,
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: getEnvBool("CORS_DEBUG", false),
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := getEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "debug"),
		Format:     getEnv("LOG_FORMAT", "text"),
		JSONFormat: environment == "production" || getEnv("LOG_FORMAT", "text") == "json",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           getEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: getEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		BurstSize:         getEnvInt("RATE_LIMIT_BURST_SIZE", 20),
	}
}

func loadGeneratorConfig() GeneratorConfig {
	d := generator.DefaultConfig()

	return GeneratorConfig{
		Tunables: generator.Config{
			EccMax:                   getEnvFloat("GENERATOR_ECC_MAX", d.EccMax),
			IncMax:                   getEnvFloat("GENERATOR_INC_MAX", d.IncMax),
			SmaMinRadius:             getEnvFloat("GENERATOR_SMA_MIN_RADIUS", d.SmaMinRadius),
			SmaMaxSOI:                getEnvFloat("GENERATOR_SMA_MAX_SOI", d.SmaMaxSOI),
			MaxMassRatio:             getEnvFloat("GENERATOR_MAX_MASS_RATIO", d.MaxMassRatio),
			MinTidalLockingMassRatio: getEnvFloat("GENERATOR_MIN_TIDAL_LOCKING_MASS_RATIO", d.MinTidalLockingMassRatio),
			MaxTidalLockingRadius:    getEnvFloat("GENERATOR_MAX_TIDAL_LOCKING_RADIUS", d.MaxTidalLockingRadius),
			MaxRotationRate:          getEnvFloat("GENERATOR_MAX_ROTATION_RATE", d.MaxRotationRate),
			MinRotationFactor:        getEnvFloat("GENERATOR_MIN_ROTATION_FACTOR", d.MinRotationFactor),
			EccIncExponent:           getEnvFloat("GENERATOR_ECC_INC_EXPONENT", d.EccIncExponent),
			SOISeparationFactor:      getEnvFloat("GENERATOR_SOI_SEPARATION_FACTOR", d.SOISeparationFactor),
			ProbabilityOfSunOrbit:    getEnvFloat("GENERATOR_PROBABILITY_OF_SUN_ORBIT", d.ProbabilityOfSunOrbit),
			MaxReferenceAttempts:     getEnvInt("GENERATOR_MAX_REFERENCE_ATTEMPTS", d.MaxReferenceAttempts),
			MaxOrbitAttempts:         getEnvInt("GENERATOR_MAX_ORBIT_ATTEMPTS", d.MaxOrbitAttempts),
		},
		BaselinePath: getEnv("GENERATOR_BASELINE_PATH", ""),
	}
}

func loadMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: getEnvBool("METRICS_ENABLED", true),
		Path:    getEnv("METRICS_PATH", "/metrics"),
	}
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for postgres")
		}
	case "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for sqlite3")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if err := c.Generator.Tunables.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}

	return nil
}

// ConnectionString returns the data source name for the configured driver.
func (c *Config) ConnectionString() string {
	if c.Database.Driver == "sqlite3" {
		return c.Database.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
