package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Service ServiceConfig `yaml:"service"`
	PayPal  PayPalConfig  `yaml:"paypal"`
	Server  ServerConfig  `yaml:"server"`
	Policy  PolicyConfig  `yaml:"policy"`
	Sheets  SheetsConfig  `yaml:"sheets"`
}

// LoadConfig reads the YAML config file pointed at by CONFIG_PATH and then
// applies environment overrides. Secrets arrive via the environment in
// deployed setups, so a missing default config file is tolerated; an
// explicitly set CONFIG_PATH that cannot be read is an error.
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if configPath == "" {
		configPath = "./configs/payment.yaml"
	}

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(absPath)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PAYPAL_CLIENT_ID"); v != "" {
		c.PayPal.ClientID = v
	}
	if v := os.Getenv("PAYPAL_CLIENT_SECRET"); v != "" {
		c.PayPal.ClientSecret = v
	}
	if v := os.Getenv("PAYPAL_ENVIRONMENT"); v != "" {
		c.PayPal.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTP.Port = port
		}
	}
	if v := os.Getenv("SHEETS_WEBHOOK_URL"); v != "" {
		c.Sheets.WebhookURL = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.Server.HTTP.AllowedOrigins = origins
	}
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "payment"
	}
	if c.Service.Environment == "" {
		c.Service.Environment = "development"
	}
	if c.PayPal.Environment == "" {
		c.PayPal.Environment = PayPalEnvSandbox
	}
	if c.Server.HTTP.Port == 0 {
		c.Server.HTTP.Port = 3000
	}
	if len(c.Server.HTTP.AllowedOrigins) == 0 {
		c.Server.HTTP.AllowedOrigins = []string{"*"}
	}
}

func (c *Config) validate() error {
	if c.PayPal.ClientID == "" || c.PayPal.ClientSecret == "" {
		return fmt.Errorf("paypal client id and secret are required")
	}
	switch c.PayPal.Environment {
	case PayPalEnvSandbox, PayPalEnvLive, PayPalEnvProduction:
	default:
		return fmt.Errorf("unknown paypal environment: %s", c.PayPal.Environment)
	}
	return nil
}
