package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/shared/utils"
	"starfield-server/internal/space"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Universe  UniverseConfig
	Session   SessionConfig
}

type ServerConfig struct {
	Port            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL       string
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
	CookieSameSite  string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// UniverseConfig is the read-only configuration of the generation core.
type UniverseConfig struct {
	GridWidth     int
	GridHeight    int
	SectorPixels  float64
	PanSpeed      float64
	FrameSeconds  float64
	Normalization lehmer.Normalization
	ScanWorkers   int
	Palette       space.Palette
}

func (u UniverseConfig) FrameTime() time.Duration {
	return time.Duration(math.Round(u.FrameSeconds * float64(time.Second)))
}

type SessionStore string

const (
	SessionStoreMemory   SessionStore = "memory"
	SessionStoreRedis    SessionStore = "redis"
	SessionStorePostgres SessionStore = "postgres"
)

type SessionConfig struct {
	Store SessionStore
	TTL   time.Duration
}

var GlobalConfig *Config

// Init loads, validates and installs the process configuration.
func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment and, when
// STARFIELD_CONFIG_PATH is set, overlays the universe section from that
// YAML file. It does not validate.
func Load() (*Config, error) {
	universe, err := loadUniverseConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Auth:      loadAuthConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Universe:  universe,
		Session:   loadSessionConfig(),
	}

	if path := os.Getenv("STARFIELD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &config.Universe); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnv("SERVER_PORT", "8080"),
		Environment:     utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:     time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout:    time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:     time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
		ShutdownTimeout: time.Duration(utils.GetEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "starfield"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:       utils.GetEnv("REDIS_URL", ""),
		Host:      utils.GetEnv("REDIS_HOST", "localhost"),
		Port:      utils.GetEnv("REDIS_PORT", "6379"),
		Password:  utils.GetEnv("REDIS_PASSWORD", ""),
		DB:        utils.GetEnvInt("REDIS_DB", 0),
		KeyPrefix: utils.GetEnv("REDIS_KEY_PREFIX", "starfield:session:"),
	}
}

func loadAuthConfig() AuthConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		CookieSecure:    environment == "production",
		CookieSameSite:  utils.GetEnv("COOKIE_SAME_SITE", "lax"),
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 60),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 120),
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadUniverseConfig() (UniverseConfig, error) {
	palette := space.DefaultPalette()
	if raw := utils.GetEnv("UNIVERSE_PALETTE", ""); raw != "" {
		p, err := space.ParsePalette(raw)
		if err != nil {
			return UniverseConfig{}, fmt.Errorf("invalid UNIVERSE_PALETTE: %w", err)
		}
		palette = p
	}

	return UniverseConfig{
		GridWidth:     utils.GetEnvInt("UNIVERSE_GRID_WIDTH", 800/16),
		GridHeight:    utils.GetEnvInt("UNIVERSE_GRID_HEIGHT", 600/16),
		SectorPixels:  utils.GetEnvFloat("UNIVERSE_SECTOR_PIXELS", 16),
		PanSpeed:      utils.GetEnvFloat("UNIVERSE_PAN_SPEED", 50),
		FrameSeconds:  utils.GetEnvFloat("UNIVERSE_FRAME_SECONDS", 0.01666),
		Normalization: lehmer.Normalization(utils.GetEnv("UNIVERSE_FLOAT_NORMALIZATION", string(lehmer.NormalizationParity))),
		ScanWorkers:   utils.GetEnvInt("UNIVERSE_SCAN_WORKERS", 1),
		Palette:       palette,
	}, nil
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		Store: SessionStore(utils.GetEnv("SESSION_STORE", string(SessionStoreMemory))),
		TTL:   time.Duration(utils.GetEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}
}

type fileConfig struct {
	Universe struct {
		GridWidth     *int     `yaml:"grid_width"`
		GridHeight    *int     `yaml:"grid_height"`
		SectorPixels  *float64 `yaml:"sector_pixels"`
		PanSpeed      *float64 `yaml:"pan_speed"`
		FrameSeconds  *float64 `yaml:"frame_seconds"`
		Normalization *string  `yaml:"float_normalization"`
		ScanWorkers   *int     `yaml:"scan_workers"`
		Palette       []string `yaml:"palette"`
	} `yaml:"universe"`
}

func loadFromFile(path string, u *UniverseConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	f := fc.Universe
	if f.GridWidth != nil {
		u.GridWidth = *f.GridWidth
	}
	if f.GridHeight != nil {
		u.GridHeight = *f.GridHeight
	}
	if f.SectorPixels != nil {
		u.SectorPixels = *f.SectorPixels
	}
	if f.PanSpeed != nil {
		u.PanSpeed = *f.PanSpeed
	}
	if f.FrameSeconds != nil {
		u.FrameSeconds = *f.FrameSeconds
	}
	if f.Normalization != nil {
		u.Normalization = lehmer.Normalization(*f.Normalization)
	}
	if f.ScanWorkers != nil {
		u.ScanWorkers = *f.ScanWorkers
	}
	if len(f.Palette) > 0 {
		palette := make(space.Palette, 0, len(f.Palette))
		for _, hex := range f.Palette {
			c, err := space.ParseColor(hex)
			if err != nil {
				return fmt.Errorf("config file palette: %w", err)
			}
			palette = append(palette, c)
		}
		u.Palette = palette
	}

	return nil
}

// Validate checks the universe section on its own, for binaries that only
// run the generation core.
func (u UniverseConfig) Validate() error {
	if u.GridWidth <= 0 || u.GridHeight <= 0 {
		return fmt.Errorf("universe grid must be positive, got %dx%d", u.GridWidth, u.GridHeight)
	}
	if u.SectorPixels <= 0 {
		return fmt.Errorf("UNIVERSE_SECTOR_PIXELS must be positive")
	}
	if u.PanSpeed < 0 {
		return fmt.Errorf("UNIVERSE_PAN_SPEED must not be negative")
	}
	if u.FrameSeconds <= 0 {
		return fmt.Errorf("UNIVERSE_FRAME_SECONDS must be positive")
	}
	if !u.Normalization.Valid() {
		return fmt.Errorf("UNIVERSE_FLOAT_NORMALIZATION must be %q or %q, got %q",
			lehmer.NormalizationParity, lehmer.NormalizationUnit, u.Normalization)
	}
	if u.ScanWorkers < 1 {
		return fmt.Errorf("UNIVERSE_SCAN_WORKERS must be at least 1")
	}
	if len(u.Palette) == 0 {
		return fmt.Errorf("universe palette must not be empty")
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Universe.Validate(); err != nil {
		return err
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStorePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres session store")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
