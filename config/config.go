package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via config files or the environment.
type AppConfig struct {
	AppPort        string
	JWTSecret      string
	JWTTTLHours    int
	AllowedOrigins []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis backs token revocation on logout; disabled by default
	RedisEnabled  bool
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Concurrent children queries per tree level
	CommentTreeFanout int
}

// ErrMissingJWTSecret is returned by Load when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in config or environment")

// TokenTTL returns the lifetime of issued bearer tokens.
func (c AppConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// Load reads config/config.json relative to the working directory.
func Load() (AppConfig, error) {
	return LoadFile(filepath.Join("config", "config.json"))
}

// LoadFile builds the configuration.
// Precedence: JSON file -> defaults -> environment variable overrides.
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	if err := loadJSONConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	if cfg.JWTSecret == "" {
		return cfg, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadJSONConfig reads JSON file into cfg if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(m map[string]any, key string) string {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	getInt := func(m map[string]any, key string) int {
		if v, ok := m[key]; ok {
			switch t := v.(type) {
			case float64:
				return int(t)
			case string:
				i, _ := strconv.Atoi(t)
				return i
			}
		}
		return 0
	}
	getBool := func(m map[string]any, key string) bool {
		if v, ok := m[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
		return false
	}
	getStringSlice := func(m map[string]any, key string) []string {
		if v, ok := m[key]; ok {
			if arr, ok := v.([]any); ok {
				res := make([]string, 0, len(arr))
				for _, it := range arr {
					if s, ok := it.(string); ok {
						res = append(res, s)
					}
				}
				return res
			}
		}
		return nil
	}
	section := func(name string) map[string]any {
		if m, ok := raw[name].(map[string]any); ok {
			return m
		}
		// flat layout: every key lives at the top level
		return raw
	}

	app := section("app")
	out.AppPort = getString(app, "AppPort")
	out.JWTSecret = getString(app, "JWTSecret")
	out.JWTTTLHours = getInt(app, "JWTTTLHours")
	out.AllowedOrigins = getStringSlice(app, "AllowedOrigins")
	out.GinMode = getString(app, "GinMode")
	out.GinPath = getString(app, "GinPath")
	out.CommentTreeFanout = getInt(app, "CommentTreeFanout")

	db := section("database")
	out.DBDriver = getString(db, "DBDriver")
	out.DatabaseURI = getString(db, "DatabaseURI")
	out.DBHost = getString(db, "DBHost")
	out.DBPort = getString(db, "DBPort")
	out.DBUser = getString(db, "DBUser")
	out.DBPassword = getString(db, "DBPassword")
	out.DBName = getString(db, "DBName")

	rd := section("redis")
	out.RedisEnabled = getBool(rd, "RedisEnabled")
	out.RedisHost = getString(rd, "RedisHost")
	out.RedisPort = getInt(rd, "RedisPort")
	out.RedisDB = getInt(rd, "RedisDB")
	out.RedisPassword = getString(rd, "RedisPassword")

	lg := section("log")
	out.LogLevel = getString(lg, "LogLevel")
	out.LogPath = getString(lg, "LogPath")
	out.LogMaxSizeMB = getInt(lg, "LogMaxSizeMB")
	out.LogMaxBackups = getInt(lg, "LogMaxBackups")
	out.LogMaxAgeDays = getInt(lg, "LogMaxAgeDays")
	out.LogCompress = getBool(lg, "LogCompress")
	return nil
}

// applyDefaults fills zero values.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "3001"
	}
	if c.JWTTTLHours == 0 {
		c.JWTTTLHours = 7 * 24
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if c.DBDriver == "" {
		c.DBDriver = "mysql"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		switch c.DBDriver {
		case "postgres":
			c.DBPort = "5432"
		default:
			c.DBPort = "3306"
		}
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "threadbbs"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
	if c.CommentTreeFanout == 0 {
		c.CommentTreeFanout = 8
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) error {
	var errs []error
	atoi := func(key, val string) int {
		i, err := strconv.Atoi(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid integer value for %s: %q", key, val))
		}
		return i
	}

	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("JWT_SECRET", ""); v != "" {
		c.JWTSecret = v
	}
	if v := getEnv("JWT_TTL_HOURS", ""); v != "" {
		c.JWTTTLHours = atoi("JWT_TTL_HOURS", v)
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("DB_DRIVER", ""); v != "" {
		c.DBDriver = strings.ToLower(v)
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("DB_HOST", ""); v != "" {
		c.DBHost = v
	}
	if v := getEnv("DB_PORT", ""); v != "" {
		c.DBPort = v
	}
	if v := getEnv("DB_USER", ""); v != "" {
		c.DBUser = v
	}
	if v := getEnv("DB_PASSWORD", ""); v != "" {
		c.DBPassword = v
	}
	if v := getEnv("DB_NAME", ""); v != "" {
		c.DBName = v
	}
	if v := getEnv("REDIS_ENABLED", ""); v != "" {
		c.RedisEnabled = v == "true"
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	if v := getEnv("REDIS_PORT", ""); v != "" {
		c.RedisPort = atoi("REDIS_PORT", v)
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		c.RedisDB = atoi("REDIS_DB", v)
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	// Logging env overrides
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = atoi("LOG_MAX_SIZE_MB", v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = atoi("LOG_MAX_BACKUPS", v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = atoi("LOG_MAX_AGE_DAYS", v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
	if v := getEnv("COMMENT_TREE_FANOUT", ""); v != "" {
		c.CommentTreeFanout = atoi("COMMENT_TREE_FANOUT", v)
	}
	return errors.Join(errs...)
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
