// Package config loads the process configuration from a YAML file with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath          = "."
	defaultCookieName    = "jwtToken"
	defaultExpirySeconds = 3600
	defaultBcryptCost    = 12
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// JWT holds the token signing material and validity window. The secret
	// is loaded once at startup, is immutable for the process lifetime, and
	// must never be logged or exposed in responses.
	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	// Cookie describes the session cookie the signin flow sets and the
	// authentication middleware reads.
	Cookie CookieConfig `json:"cookie" yaml:"cookie"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// JWTConfig defines token signing configuration.
type JWTConfig struct {
	Secret string `json:"secret" yaml:"secret"`
	// ExpirySeconds is the token TTL. Zero or negative is legal and yields
	// immediately expired tokens.
	ExpirySeconds int `json:"expirySeconds" yaml:"expirySeconds"`
}

// TTL returns the configured token validity window as a duration.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirySeconds) * time.Second
}

// CookieConfig defines session cookie attributes. HTTP-only is not
// configurable: the session cookie is never script-accessible.
type CookieConfig struct {
	Name   string `json:"name" yaml:"name"`
	Secure bool   `json:"secure" yaml:"secure"`
}

// AuthConfig defines authentication-related configuration.
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
	// PublicPaths lists request paths that bypass the authentication
	// middleware. Matching is by exact path, not prefix.
	PublicPaths []string `json:"publicPaths" yaml:"publicPaths"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads a .yaml file through koanf, then applies environment
// variable overrides (JWT_SECRET -> jwt.secret).
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// JWT_EXPIRYSECONDS -> jwt.expiryseconds; struct matching below
			// is case-insensitive.
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the service configuration and applies defaults for optional
// fields.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Cookie.Name) == "" {
		cfg.Cookie.Name = defaultCookieName
	}
	if cfg.JWT.ExpirySeconds == 0 {
		cfg.JWT.ExpirySeconds = defaultExpirySeconds
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}

	return cfg, nil
}
