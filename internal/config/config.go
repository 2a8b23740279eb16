package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pressid/mission-orders/internal/log"
)

const (
	// CacheProviderRedis uses a redis server as verification lookup cache
	CacheProviderRedis = "redis"
	// CacheProviderValKey uses a valkey server as verification lookup cache
	CacheProviderValKey = "valkey"
	// CacheProviderMemory uses an in process cache
	CacheProviderMemory = "memory"

	defaultServerPort   = 3001
	defaultCacheTTL     = 24 * time.Hour
	defaultOrganization = "Algérie Directe"
	defaultPosition     = "Press correspondent"
)

// Configuration holds the project configuration
type Configuration struct {
	ServerUrl     string
	ServerPort    int
	Database      Database      `mapstructure:"Database"`
	Cache         Cache         `mapstructure:"Cache"`
	HTTPBasicAuth HTTPBasicAuth `mapstructure:"HTTPBasicAuth"`
	Log           Log           `mapstructure:"Log"`
	Issuer        Issuer        `mapstructure:"Issuer"`
	PubSub        PubSub        `mapstructure:"PubSub"`
}

// Database has the database configuration
// URL: The database connection string
type Database struct {
	URL string `mapstructure:"Url" tip:"The Datasource name locator"`
}

// Cache configurations. Provider is one of redis, valkey or memory.
type Cache struct {
	Provider string        `mapstructure:"Provider" tip:"The cache provider (redis, valkey, memory)"`
	Url      string        `mapstructure:"Url" tip:"The redis/valkey url to use as a cache"`
	TTL      time.Duration `mapstructure:"TTL" tip:"Time to live of verification lookups in the cache"`
}

// Log holds runtime configurations
//
// Level: The minimum log level to show on logs. Values can be
//
//	 -4: Debug
//		0: Info
//		4: Warning
//		8: Error
//	 The default log level is debug
//
// Mode: Log mode is the format of the log. It can be text or json
// 1: JSON
// 2: Text
// The default log formal is JSON
type Log struct {
	Level int `mapstructure:"Level" tip:"Minimum level to log: (-4:Debug, 0:Info, 4:Warning, 8:Error)"`
	Mode  int `mapstructure:"Mode" tip:"Log format (1: JSON, 2:Structured text)"`
}

// HTTPBasicAuth configuration. Issuance and back office endpoints are protected with basic http auth.
// Verification is public.
type HTTPBasicAuth struct {
	User     string `mapstructure:"User" tip:"Basic auth username"`
	Password string `mapstructure:"Password" tip:"Basic auth password"`
}

// Issuer holds the values printed on every mission order when the request does not provide them.
// Location is the IANA time zone used to decide what "today" is.
type Issuer struct {
	Organization string `mapstructure:"Organization" tip:"Default organization printed on mission orders"`
	Position     string `mapstructure:"Position" tip:"Default journalist position printed on mission orders"`
	Location     string `mapstructure:"Location" tip:"Time zone used to compute calendar dates (e.g. Africa/Algiers)"`
}

// PubSub configuration. When enabled, issuance and verification events are published on the
// redis or valkey server configured as cache.
type PubSub struct {
	Enabled bool `mapstructure:"Enabled" tip:"Publish issuance and verification events"`
}

// Sanitize perform some basic checks and sanitizations in the configuration.
// Returns true if config is acceptable, error otherwise.
func (c *Configuration) Sanitize() error {
	if c.ServerUrl != "" {
		sUrl, err := c.validateServerUrl()
		if err != nil {
			return fmt.Errorf("serverUrl is not a valid URL <%s>: %w", c.ServerUrl, err)
		}
		c.ServerUrl = sUrl
	}

	if c.Database.URL == "" {
		return fmt.Errorf("a database url must be provided")
	}

	if err := c.sanitizeCache(); err != nil {
		return err
	}

	if c.PubSub.Enabled && c.Cache.Provider == CacheProviderMemory {
		return fmt.Errorf("pubsub requires a redis or valkey cache provider")
	}

	if _, err := c.Issuer.TimeLocation(); err != nil {
		return fmt.Errorf("issuer location is not a valid time zone <%s>: %w", c.Issuer.Location, err)
	}

	return nil
}

// SanitizeNotifications checks the configuration of the events consumer. Only the pubsub server is needed.
func (c *Configuration) SanitizeNotifications() error {
	if err := c.sanitizeCache(); err != nil {
		return err
	}
	if c.Cache.Provider == CacheProviderMemory {
		return fmt.Errorf("the notifications consumer requires a redis or valkey cache provider")
	}
	return nil
}

func (c *Configuration) sanitizeCache() error {
	switch c.Cache.Provider {
	case "":
		c.Cache.Provider = CacheProviderMemory
	case CacheProviderMemory:
	case CacheProviderRedis, CacheProviderValKey:
		if c.Cache.Url == "" {
			return fmt.Errorf("a cache url must be provided for provider %s", c.Cache.Provider)
		}
	default:
		return fmt.Errorf("unknown cache provider <%s>", c.Cache.Provider)
	}
	return nil
}

// TimeLocation returns the time zone used to compute calendar dates. UTC when not configured.
func (i Issuer) TimeLocation() (*time.Location, error) {
	if i.Location == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(i.Location)
}

func (c *Configuration) validateServerUrl() (string, error) {
	sUrl, err := url.ParseRequestURI(c.ServerUrl)
	if err != nil {
		return c.ServerUrl, err
	}
	if sUrl.Scheme == "" {
		return c.ServerUrl, fmt.Errorf("server URL must be an absolute URL")
	}
	sUrl.RawQuery = ""
	return strings.Trim(strings.Trim(sUrl.String(), "/"), "?"), nil
}

// Load loads the configuration from a file
func Load(fileName string) (*Configuration, error) {
	// a missing .env file is fine, env vars may come from the environment
	_ = godotenv.Load()
	bindEnv()
	pathFlag := viper.GetString("config")
	if _, err := os.Stat(pathFlag); err == nil {
		ext := filepath.Ext(pathFlag)
		if len(ext) > 1 {
			ext = ext[1:]
		}
		name := strings.Split(filepath.Base(pathFlag), ".")[0]
		viper.AddConfigPath(filepath.Dir(pathFlag))
		viper.SetConfigName(name)
		viper.SetConfigType(ext)
	} else {
		// Read default config file.
		viper.AddConfigPath(getWorkingDirectory())
		viper.SetConfigType("toml")
		if fileName == "" {
			viper.SetConfigName("config")
		} else {
			viper.SetConfigName(fileName)
		}
	}

	config := &Configuration{
		ServerPort: defaultServerPort,
		Database:   Database{},
		Cache: Cache{
			Provider: CacheProviderMemory,
			TTL:      defaultCacheTTL,
		},
		Log: Log{
			Level: log.LevelDebug,
			Mode:  log.OutputText,
		},
		Issuer: Issuer{
			Organization: defaultOrganization,
			Position:     defaultPosition,
		},
	}
	ctx := context.Background()
	if err := viper.ReadInConfig(); err != nil {
		log.Info(ctx, "config file not loaded, using defaults and environment", "err", err)
	}

	if err := viper.Unmarshal(config); err != nil {
		log.Error(ctx, "error unmarshalling config file", "err", err)
		return nil, err
	}
	checkEnvVars(ctx, config)
	return config, nil
}

func bindEnv() {
	viper.SetEnvPrefix("MISSION")
	_ = viper.BindEnv("config", "MISSION_CONFIG")
	_ = viper.BindEnv("ServerUrl", "MISSION_SERVER_URL")
	_ = viper.BindEnv("ServerPort", "MISSION_SERVER_PORT")

	_ = viper.BindEnv("Database.URL", "MISSION_DATABASE_URL")

	_ = viper.BindEnv("Log.Level", "MISSION_LOG_LEVEL")
	_ = viper.BindEnv("Log.Mode", "MISSION_LOG_MODE")

	_ = viper.BindEnv("HTTPBasicAuth.User", "MISSION_API_AUTH_USER")
	_ = viper.BindEnv("HTTPBasicAuth.Password", "MISSION_API_AUTH_PASSWORD")

	_ = viper.BindEnv("Cache.Provider", "MISSION_CACHE_PROVIDER")
	_ = viper.BindEnv("Cache.Url", "MISSION_CACHE_URL")
	_ = viper.BindEnv("Cache.TTL", "MISSION_CACHE_TTL")

	_ = viper.BindEnv("Issuer.Organization", "MISSION_ISSUER_ORGANIZATION")
	_ = viper.BindEnv("Issuer.Position", "MISSION_ISSUER_POSITION")
	_ = viper.BindEnv("Issuer.Location", "MISSION_ISSUER_LOCATION")

	_ = viper.BindEnv("PubSub.Enabled", "MISSION_PUBSUB_ENABLED")

	viper.AutomaticEnv()
}

func checkEnvVars(ctx context.Context, cfg *Configuration) {
	if cfg.ServerUrl == "" {
		log.Info(ctx, "MISSION_SERVER_URL value is missing")
	}

	if cfg.Database.URL == "" {
		log.Info(ctx, "MISSION_DATABASE_URL value is missing")
	}

	if cfg.HTTPBasicAuth.User == "" {
		log.Info(ctx, "MISSION_API_AUTH_USER value is missing")
	}

	if cfg.HTTPBasicAuth.Password == "" {
		log.Info(ctx, "MISSION_API_AUTH_PASSWORD value is missing")
	}

	if cfg.Cache.Provider != CacheProviderMemory && cfg.Cache.Url == "" {
		log.Info(ctx, "MISSION_CACHE_URL value is missing")
	}

	if cfg.Issuer.Location == "" {
		log.Info(ctx, "MISSION_ISSUER_LOCATION value is missing, using UTC")
	}
}

func getWorkingDirectory() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..") + "/"
}
