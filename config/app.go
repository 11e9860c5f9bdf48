package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
)

// AppConfig holds global application configuration
var AppConfig *Config
var (
	once    sync.Once
	loadErr error
)

type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	Env      string `mapstructure:"APP_ENV"`
	Debug    bool   `mapstructure:"DEBUG"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	InventoryPort string `mapstructure:"INVENTORY_PORT"`
	OrderPort     string `mapstructure:"ORDER_PORT"`

	// Order -> inventory stock check
	InventoryURL     string        `mapstructure:"INVENTORY_URL"`
	InventoryTimeout time.Duration `mapstructure:"INVENTORY_TIMEOUT"`

	IdempotencyTTL    time.Duration `mapstructure:"IDEMPOTENCY_TTL"`
	LowStockThreshold int           `mapstructure:"LOW_STOCK_THRESHOLD"`
}

var defaults = map[string]string{
	"APP_NAME":            "stockorder",
	"APP_ENV":             "development",
	"DEBUG":               "false",
	"LOG_LEVEL":           "info",
	"INVENTORY_PORT":      "8082",
	"ORDER_PORT":          "8081",
	"INVENTORY_URL":       "http://localhost:8082",
	"INVENTORY_TIMEOUT":   "3s",
	"IDEMPOTENCY_TTL":     "10m",
	"LOW_STOCK_THRESHOLD": "5",
}

// Load reads the environment (falling back to defaults) into a Config.
func Load() (*Config, error) {
	raw := make(map[string]interface{}, len(defaults))
	for key, def := range defaults {
		raw[key] = GetEnv(key, def)
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.InventoryTimeout <= 0 {
		return nil, fmt.Errorf("config: INVENTORY_TIMEOUT must be positive, got %s", cfg.InventoryTimeout)
	}
	if cfg.IdempotencyTTL <= 0 {
		return nil, fmt.Errorf("config: IDEMPOTENCY_TTL must be positive, got %s", cfg.IdempotencyTTL)
	}
	return &cfg, nil
}

// LoadAppConfig initializes the global AppConfig variable once.
func LoadAppConfig() error {
	once.Do(func() {
		AppConfig, loadErr = Load()
	})
	return loadErr
}
