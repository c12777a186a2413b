package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Roblox  RobloxConfig  `mapstructure:"roblox"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RobloxConfig holds the session credential and connection settings
type RobloxConfig struct {
	// Cookie is the .ROBLOSECURITY session cookie. Optional; commands
	// that need authentication fail without it.
	Cookie string `mapstructure:"cookie"`
	// Proxy is an optional HTTP(S) proxy URL all requests route through.
	Proxy     string        `mapstructure:"proxy"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// FilterConfig contains filter presets and the default expression
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
