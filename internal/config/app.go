package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MINES"

type App struct {
	Addr          string
	BasePath      string
	Development   bool
	SessionTTL    time.Duration
	SweepInterval time.Duration
	MaxCells      int
	TokenSecret   string
	TokenLifetime time.Duration
	WSOrigins     []string
}

// NewViper returns a viper instance reading MINES_* environment variables
// on top of the defaults below.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("base-path", "")
	v.SetDefault("development", false)
	v.SetDefault("session-ttl", time.Hour)
	v.SetDefault("sweep-interval", time.Minute)
	v.SetDefault("max-cells", 100*100)
	v.SetDefault("token-secret", "")
	v.SetDefault("token-lifetime", 24*time.Hour)
	v.SetDefault("ws-origins", []string{})
	return v
}

// BindFlags lets command line flags override environment and defaults.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("unable to bind flags: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) (*App, error) {
	cfg := &App{
		Addr:          v.GetString("addr"),
		BasePath:      strings.TrimSuffix(v.GetString("base-path"), "/"),
		Development:   v.GetBool("development"),
		SessionTTL:    v.GetDuration("session-ttl"),
		SweepInterval: v.GetDuration("sweep-interval"),
		MaxCells:      v.GetInt("max-cells"),
		TokenSecret:   v.GetString("token-secret"),
		TokenLifetime: v.GetDuration("token-lifetime"),
		WSOrigins:     v.GetStringSlice("ws-origins"),
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session-ttl must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("sweep-interval must be positive, got %s", cfg.SweepInterval)
	}
	if cfg.MaxCells < 10 {
		return nil, fmt.Errorf("max-cells must be at least 10, got %d", cfg.MaxCells)
	}
	if cfg.TokenLifetime <= 0 {
		return nil, fmt.Errorf("token-lifetime must be positive, got %s", cfg.TokenLifetime)
	}

	if cfg.TokenSecret == "" {
		if !cfg.Development {
			return nil, fmt.Errorf("no %s_TOKEN_SECRET env variable set", EnvPrefix)
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.TokenSecret = secret
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("unable to generate token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
