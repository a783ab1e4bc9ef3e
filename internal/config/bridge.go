package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type PortRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type KiteConfig struct {
	APIBase   string        `yaml:"api_base"`
	LoginBase string        `yaml:"login_base"`
	Timeout   time.Duration `yaml:"timeout"`
}

type BridgeConfig struct {
	Host          string     `yaml:"host"`
	Ports         PortRange  `yaml:"ports"`
	EnvFile       string     `yaml:"env_file"`
	ServerCommand string     `yaml:"server_command"`
	Kite          KiteConfig `yaml:"kite"`
}

const (
	_hostDefault          = "127.0.0.1"
	_portFromDefault      = 8000
	_portToDefault        = 8010
	_envFileDefault       = ".env"
	_serverCommandDefault = "bridge-server"
	_apiBaseDefault       = "https://api.kite.trade"
	_loginBaseDefault     = "https://kite.zerodha.com/connect/login"
	_timeoutDefault       = 10 * time.Second
)

func (c *BridgeConfig) ValidateAndSetup() error {
	if c.Host == "" {
		c.Host = _hostDefault
	}
	if c.Ports.From <= 0 {
		c.Ports.From = _portFromDefault
	}
	if c.Ports.To <= 0 {
		c.Ports.To = _portToDefault
	}
	if c.Ports.To < c.Ports.From {
		return fmt.Errorf("invalid port range: %d-%d", c.Ports.From, c.Ports.To)
	}
	if c.EnvFile == "" {
		c.EnvFile = _envFileDefault
	}
	if c.ServerCommand == "" {
		c.ServerCommand = _serverCommandDefault
	}
	if c.Kite.APIBase == "" {
		c.Kite.APIBase = _apiBaseDefault
	}
	if c.Kite.LoginBase == "" {
		c.Kite.LoginBase = _loginBaseDefault
	}
	if c.Kite.Timeout <= 0 {
		c.Kite.Timeout = _timeoutDefault
	}

	return nil
}

// LoadBridgeConfig reads the yaml config. A missing file is fine and
// yields pure defaults.
func LoadBridgeConfig(filename string) (BridgeConfig, error) {
	var cfg BridgeConfig

	input, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: can't read file", err)
		}
	} else if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
