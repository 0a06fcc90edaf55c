// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package config loads CareHaven configuration from layered sources.
//
// Layers, lowest precedence first: built-in defaults, the YAML config file,
// the .env file, the process environment, command-line flags. Environment
// variables use the CAREHAVEN_ prefix with "__" separating nesting levels,
// so CAREHAVEN_AUTH__JWT_SECRET sets auth.jwt_secret.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CAREHAVEN_"

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the complete service configuration.
type Config struct {
	Environment string         `koanf:"environment"`
	HTTP        HTTPConfig     `koanf:"http"`
	Metrics     MetricsConfig  `koanf:"metrics"`
	Log         LogConfig      `koanf:"log"`
	Database    DatabaseConfig `koanf:"database"`
	Auth        AuthConfig     `koanf:"auth"`
	Mail        MailConfig     `koanf:"mail"`
	Blob        BlobConfig     `koanf:"blob"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

// MetricsConfig configures the observability listener. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL      string `koanf:"url"`
	MaxConns int32  `koanf:"max_conns"`
}

// AuthConfig configures session tokens and password reset.
type AuthConfig struct {
	JWTSecret        string        `koanf:"jwt_secret"`
	JWTExpiry        time.Duration `koanf:"jwt_expiry"`
	ResetURL         string        `koanf:"reset_url"`
	AllowAdminSignup bool          `koanf:"allow_admin_signup"`
}

// MailConfig configures outbound SMTP. An empty Host logs messages instead
// of sending them.
type MailConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	From         string `koanf:"from"`
	AdminAddress string `koanf:"admin_address"`
}

// Enabled reports whether SMTP delivery is configured.
func (m MailConfig) Enabled() bool { return m.Host != "" }

// BlobConfig configures S3-compatible document storage. An empty Bucket
// disables document uploads.
type BlobConfig struct {
	Endpoint      string        `koanf:"endpoint"`
	Region        string        `koanf:"region"`
	Bucket        string        `koanf:"bucket"`
	AccessKey     string        `koanf:"access_key"`
	SecretKey     string        `koanf:"secret_key"`
	PresignExpiry time.Duration `koanf:"presign_expiry"`
	AllowedTypes  []string      `koanf:"allowed_types"`
}

// Enabled reports whether document storage is configured.
func (b BlobConfig) Enabled() bool { return b.Bucket != "" }

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// Defaults returns the built-in configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"environment":             EnvDevelopment,
		"http.addr":               ":5000",
		"metrics.addr":            "127.0.0.1:9100",
		"log.format":              "json",
		"log.level":               "info",
		"database.url":            "",
		"database.max_conns":      10,
		"auth.jwt_secret":         "",
		"auth.jwt_expiry":         "168h",
		"auth.reset_url":          "http://localhost:3000/reset-password",
		"auth.allow_admin_signup": false,
		"mail.host":               "",
		"mail.port":               587,
		"mail.username":           "",
		"mail.password":           "",
		"mail.from":               "CareHaven <noreply@carehaven.local>",
		"mail.admin_address":      "",
		"blob.endpoint":           "",
		"blob.region":             "us-east-1",
		"blob.bucket":             "",
		"blob.access_key":         "",
		"blob.secret_key":         "",
		"blob.presign_expiry":     "15m",
		"blob.allowed_types":      []string{"image/*", "application/pdf"},
	}
}

// legacyEnv maps unprefixed variable names deployments already set.
var legacyEnv = map[string]string{
	"DATABASE_URL": "database.url",
	"JWT_SECRET":   "auth.jwt_secret",
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"environment":  "environment",
	"http-addr":    "http.addr",
	"metrics-addr": "metrics.addr",
	"log-format":   "log.format",
	"log-level":    "log.level",
	"database-url": "database.url",
}

// RegisterFlags adds the configuration override flags. Unset flags
// never override lower layers.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("environment", "", "runtime environment (development or production)")
	flags.String("http-addr", "", "API listen address")
	flags.String("metrics-addr", "", "metrics/health listen address (empty = disabled)")
	flags.String("log-format", "", "log format (json or text)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("database-url", "", "PostgreSQL connection URL")
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// File is an optional YAML config file. Empty skips the layer.
	File string
	// DotEnv is the .env file path. A missing file is ignored.
	DotEnv string
	// Flags holds flags registered by RegisterFlags. Nil skips the layer.
	Flags *pflag.FlagSet
}

// Load builds a Config from the layers in opts. The result is not validated.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("layer", "defaults").Wrap(err)
	}

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("layer", "file").
				With("path", opts.File).
				Wrap(err)
		}
	}

	if opts.DotEnv != "" {
		if err := loadDotEnv(k, opts.DotEnv); err != nil {
			return nil, err
		}
	}

	legacy := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		mapped, ok := legacyEnv[key]
		if !ok || value == "" {
			return "", nil
		}
		return mapped, value
	})
	if err := k.Load(legacy, nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("layer", "env").Wrap(err)
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("layer", "env").Wrap(err)
	}

	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("layer", "flags").Wrap(err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("operation", "decode configuration").Wrap(err)
	}
	return &cfg, nil
}

// loadDotEnv applies a .env file without touching the process environment.
// It accepts the same names as the environment layer.
func loadDotEnv(k *koanf.Koanf, path string) error {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").
			With("layer", "dotenv").
			With("path", path).
			Wrap(err)
	}

	flat := make(map[string]any, len(vars))
	for name, value := range vars {
		if mapped, ok := legacyEnv[name]; ok && value != "" {
			if _, set := flat[mapped]; !set {
				flat[mapped] = value
			}
			continue
		}
		if strings.HasPrefix(name, EnvPrefix) {
			key, v := envKey(name, value)
			flat[key] = v
		}
	}
	if err := k.Load(confmap.Provider(flat, "."), nil); err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").With("layer", "dotenv").Wrap(err)
	}
	return nil
}

// envKey turns CAREHAVEN_BLOB__ALLOWED_TYPES into blob.allowed_types.
func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(strings.ReplaceAll(key, "__", "."))
	if key == "blob.allowed_types" {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks everything the HTTP server needs.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return invalid("environment", "environment must be 'development' or 'production', got %q", c.Environment)
	}
	if c.HTTP.Addr == "" {
		return invalid("http.addr", "http.addr is required")
	}
	if c.Auth.JWTSecret == "" {
		return invalid("auth.jwt_secret", "auth.jwt_secret is required")
	}
	if c.Auth.JWTExpiry <= 0 {
		return invalid("auth.jwt_expiry", "auth.jwt_expiry must be positive, got %s", c.Auth.JWTExpiry)
	}
	if c.Mail.Enabled() && (c.Mail.Port <= 0 || c.Mail.From == "") {
		return invalid("mail", "mail.port and mail.from are required when mail.host is set")
	}
	if c.Blob.Enabled() && c.Blob.PresignExpiry <= 0 {
		return invalid("blob.presign_expiry", "blob.presign_expiry must be positive, got %s", c.Blob.PresignExpiry)
	}
	return nil
}

// ValidateDatabase checks the subset used by database-only commands.
func (c *Config) ValidateDatabase() error {
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return invalid("log.format", "log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if c.Database.URL == "" {
		return invalid("database.url", "database.url is required (set CAREHAVEN_DATABASE__URL or DATABASE_URL)")
	}
	return nil
}

func invalid(key, format string, args ...any) error {
	return oops.Code("CONFIG_INVALID").With("key", key).Errorf(format, args...)
}
