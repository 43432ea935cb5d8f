// Package config loads tradcompare settings from an optional config file,
// TRADCOMPARE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/valpere/tradcompare/internal/compare"
	"github.com/valpere/tradcompare/internal/translator"
)

const envPrefix = "TRADCOMPARE"

// Backend identifiers accepted in the backends list.
const (
	BackendOpusMT = "opus-mt"
	BackendMBart  = "mbart"
	BackendAmazon = "aws-translate"
	BackendGoogle = "google"
)

// Endpoint transports.
const (
	TransportSageMaker = "sagemaker"
	TransportHTTP      = "http"
)

var DefaultBackends = []string{BackendOpusMT, BackendMBart, BackendAmazon}

type Config struct {
	Backends []string      `mapstructure:"backends"`
	Policy   string        `mapstructure:"policy"`
	Parallel bool          `mapstructure:"parallel"`
	Timeout  time.Duration `mapstructure:"timeout"`

	Log       LogConfig       `mapstructure:"log"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Endpoints EndpointsConfig `mapstructure:"endpoints"`
	Google    GoogleConfig    `mapstructure:"google"`
	Server    ServerConfig    `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// EndpointsConfig locates the hosted MT models. With the http transport the
// endpoint names are appended to BaseURL.
type EndpointsConfig struct {
	Transport string `mapstructure:"transport"`
	BaseURL   string `mapstructure:"base_url"`
	Token     string `mapstructure:"token"`
	OpusMT    string `mapstructure:"opus_mt"`
	MBart     string `mapstructure:"mbart"`
}

type GoogleConfig struct {
	Credentials string `mapstructure:"credentials"`
	ProjectID   string `mapstructure:"project_id"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"backends":     "backends",
	"policy":       "policy",
	"parallel":     "parallel",
	"timeout":      "timeout",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"region":       "aws.region",
	"profile":      "aws.profile",
	"transport":    "endpoints.transport",
	"endpoint-url": "endpoints.base_url",
	"credentials":  "google.credentials",
	"project":      "google.project_id",
	"addr":         "server.addr",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backends", DefaultBackends)
	v.SetDefault("policy", string(compare.PolicyAbort))
	v.SetDefault("parallel", false)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("endpoints.transport", TransportSageMaker)
	v.SetDefault("endpoints.base_url", "")
	v.SetDefault("endpoints.token", "")
	v.SetDefault("endpoints.opus_mt", translator.DefaultOpusMTEndpoint)
	v.SetDefault("endpoints.mbart", translator.DefaultMBartEndpoint)
	v.SetDefault("google.credentials", "")
	v.SetDefault("google.project_id", "")
	v.SetDefault("server.addr", ":8080")
}

// Load reads configuration. path may be empty; flags may be nil. Only flags
// the user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Backends) == 0 {
		return fmt.Errorf("no backends configured")
	}
	for _, name := range c.Backends {
		switch name {
		case BackendOpusMT, BackendMBart, BackendAmazon, BackendGoogle:
		default:
			return fmt.Errorf("unknown backend: %s (supported: %s, %s, %s, %s)",
				name, BackendOpusMT, BackendMBart, BackendAmazon, BackendGoogle)
		}
	}

	if _, err := compare.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	switch c.Endpoints.Transport {
	case TransportSageMaker:
	case TransportHTTP:
		if c.Endpoints.BaseURL == "" {
			return fmt.Errorf("endpoints.base_url is required for the http transport")
		}
	default:
		return fmt.Errorf("unknown endpoint transport: %s (supported: sagemaker, http)", c.Endpoints.Transport)
	}

	return nil
}

// CompareConfig converts the driver settings.
func (c *Config) CompareConfig() compare.Config {
	policy, _ := compare.ParsePolicy(c.Policy)
	return compare.Config{
		Policy:   policy,
		Parallel: c.Parallel,
		Timeout:  c.Timeout,
	}
}
