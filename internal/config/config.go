package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	DatabaseURL   string   `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32    `mapstructure:"DB_MIN_CONNS"`
	AuthSecret    string   `mapstructure:"AUTH_SECRET"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
	NoticeTTLMs   int      `mapstructure:"NOTICE_TTL_MS"`
	BusinessOpen  string   `mapstructure:"BUSINESS_OPEN"`
	BusinessClose string   `mapstructure:"BUSINESS_CLOSE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("NOTICE_TTL_MS", 5000)
	v.SetDefault("BUSINESS_OPEN", "09:00")
	v.SetDefault("BUSINESS_CLOSE", "17:00")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("NOTICE_TTL_MS")
	v.BindEnv("BUSINESS_OPEN")
	v.BindEnv("BUSINESS_CLOSE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — every request acts as a fixed demo patient.")
		log.Println("WARNING: Set ENV=production and configure AUTH_SECRET for production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NoticeTTL returns the booking success-notice display duration.
func (c *Config) NoticeTTL() time.Duration {
	if c.NoticeTTLMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.NoticeTTLMs) * time.Millisecond
}

// Validate checks that the configuration is safe to run. Outside of
// development mode AUTH_SECRET must be set so that real JWT authentication
// is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf(
			"AUTH_SECRET must be set when ENV is not \"development\" (current ENV=%q). "+
				"Refusing to start without authentication configuration", c.Env)
	}
	if c.BusinessOpen != "" && !validClock(c.BusinessOpen) {
		return fmt.Errorf("BUSINESS_OPEN must be HH:MM, got %q", c.BusinessOpen)
	}
	if c.BusinessClose != "" && !validClock(c.BusinessClose) {
		return fmt.Errorf("BUSINESS_CLOSE must be HH:MM, got %q", c.BusinessClose)
	}
	return nil
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
