// config - источник загрузки конфигурации клиента HeartLink.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
}

// APIConfig — REST-бэкенд, с которым разговаривает клиент.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"https://api.heartlink.app/v1"`
	Timeout time.Duration `yaml:"timeout"  env:"API_TIMEOUT"  env-default:"30s"`
}

// AuthConfig — окна жизни токенов со стороны клиента.
//
// RefreshThreshold — за сколько до истечения access-токена клиент
// рефрешит его проактивно при инициализации сессии.
// AccessTokenFallbackTTL — срок, который приписывается access-токену,
// если бэкенд не вернул expiresIn и из токена не извлекается exp.
type AuthConfig struct {
	RefreshThreshold       time.Duration `yaml:"refresh_threshold"         env:"AUTH_REFRESH_THRESHOLD"          env-default:"5m"`
	RefreshTokenTTL        time.Duration `yaml:"refresh_token_ttl"         env:"AUTH_REFRESH_TOKEN_TTL"          env-default:"168h"`
	AccessTokenFallbackTTL time.Duration `yaml:"access_token_fallback_ttl" env:"AUTH_ACCESS_TOKEN_FALLBACK_TTL"  env-default:"15m"`
}

// StorageConfig — durable-состояние клиента: файл с токенами и device id.
type StorageConfig struct {
	TokenPath    string `yaml:"token_path"     env:"STORAGE_TOKEN_PATH"     env-default:".heartlink/tokens.json"`
	DeviceIDPath string `yaml:"device_id_path" env:"STORAGE_DEVICE_ID_PATH" env-default:".heartlink/device_id"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return validated(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return validated(&cfg)
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validated(&cfg)
}

// validated — проверки, на которых падаем сразу, а не на первом запросе.
func validated(cfg *Config) (*Config, error) {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api.base_url %q", cfg.API.BaseURL)
	}

	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	if cfg.Auth.RefreshThreshold < 0 {
		return nil, fmt.Errorf("auth.refresh_threshold must be non-negative, got %s", cfg.Auth.RefreshThreshold)
	}

	return cfg, nil
}
