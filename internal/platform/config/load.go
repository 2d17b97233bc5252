package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

// listKeys hold comma-separated lists when set from the environment.
var listKeys = map[string]bool{
	"webhook.urls": true,
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir points Load at a directory other than ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// Load builds the configuration for profile. Later layers win:
//
//	defaults < base.yaml < {profile}.yaml < APP_* environment
//
// Environment names are matched against the keys the earlier layers
// defined, so an underscore inside a key survives:
//
//	APP_SERVER_READ_TIMEOUT               -> server.read_timeout
//	APP_WEBHOOK_URLS=http://a,http://b    -> webhook.urls (list)
//	APP_WEBHOOK_CLIENT_RETRY_MAX_ATTEMPTS -> webhook.client.retry.max_attempts
//
// The result is validated before it is returned.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	for _, layer := range []func(*koanf.Koanf) error{
		loadDefaults,
		loadFile(filepath.Join(o.configDir, "base.yaml")),
		loadFile(filepath.Join(o.configDir, profile+".yaml")),
		loadEnv,
	} {
		if err := layer(k); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// loadDefaults sets every known key, which also makes them matchable from
// the environment.
func loadDefaults(k *koanf.Koanf) error {
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}
	return nil
}

func loadFile(path string) func(*koanf.Koanf) error {
	return func(k *koanf.Koanf) error {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
		return nil
	}
}

func loadEnv(k *koanf.Koanf) error {
	known := envKeys(k.Keys())

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			key, ok := known[name]
			if !ok {
				return strings.ReplaceAll(name, "_", "."), value
			}
			if listKeys[key] {
				return key, splitList(value)
			}
			return key, value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("loading %s environment: %w", envPrefix, err)
	}
	return nil
}

// validateProfile rejects names that could escape the config directory.
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`):
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	case strings.Contains(profile, ".."):
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

// envKeys maps "server_read_timeout" to "server.read_timeout" for every
// koanf key.
func envKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

func splitList(value string) []string {
	var out []string
	for p := range strings.SplitSeq(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
