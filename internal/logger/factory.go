package logger

import (
	"os"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvLevel  = "OXY_PANO_LOG_LEVEL"
	EnvFormat = "OXY_PANO_LOG_FORMAT"
	EnvDev    = "OXY_PANO_LOG_DEVELOPMENT"
)

// ApplyEnv overrides cfg with any logging environment variables that are set.
func ApplyEnv(cfg LoggerConfig) LoggerConfig {
	if level := os.Getenv(EnvLevel); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv(EnvFormat); format != "" {
		cfg.Format = format
	}
	if dev := os.Getenv(EnvDev); dev != "" {
		cfg.Development = strings.ToLower(dev) == "true"
	}
	return cfg
}
