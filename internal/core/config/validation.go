package config

import (
	"fmt"
	"slices"

	"github.com/aki/qrlabel/internal/core/store"
)

// ValidateConfig validates the entire configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	if err := ValidateStore(&config.Store); err != nil {
		return fmt.Errorf("invalid store: %w", err)
	}
	if err := ValidateLabel(&config.Label); err != nil {
		return fmt.Errorf("invalid label: %w", err)
	}
	if config.Server.MaxCount < 0 {
		return fmt.Errorf("invalid server: maxCount must not be negative")
	}

	switch config.MCP.Transport.Type {
	case "", "stdio", "http", "https":
	default:
		return fmt.Errorf("invalid mcp: unsupported transport %q", config.MCP.Transport.Type)
	}

	return nil
}

// ValidateStore checks the driver name and that persistent drivers have a path
func ValidateStore(s *StoreConfig) error {
	if !slices.Contains(store.Drivers, s.Driver) {
		return fmt.Errorf("%w: %q", store.ErrUnknownDriver, s.Driver)
	}
	if s.Driver != store.DriverMemory && s.Path == "" {
		return fmt.Errorf("path is required for driver %q", s.Driver)
	}
	return nil
}

// ValidateLabel checks that every dimension is positive
func ValidateLabel(l *LabelConfig) error {
	if l.WidthMM <= 0 || l.HeightMM <= 0 {
		return fmt.Errorf("physical size must be positive, got %gx%g mm", l.WidthMM, l.HeightMM)
	}
	if l.WidthPx <= 0 || l.HeightPx <= 0 {
		return fmt.Errorf("pixel size must be positive, got %dx%d", l.WidthPx, l.HeightPx)
	}
	if l.FontSize <= 0 || l.PDFFontSize <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	return nil
}
