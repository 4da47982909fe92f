package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/banshee-data/position.report/internal/fsutil"
	"github.com/banshee-data/position.report/internal/render"
)

// DefaultEstimatorPath is where the estimator build drops its binary,
// relative to the working directory.
const DefaultEstimatorPath = "target/debug/opti_radar_main"

// DefaultConfigPath is the checked-in defaults file.
const DefaultConfigPath = "config/report.defaults.json"

const maxConfigSize = 1 * 1024 * 1024 // 1MB

// ReportConfig holds run settings. Nil fields fall back to defaults, so a
// JSON file only needs the keys it changes.
type ReportConfig struct {
	EstimatorPath *string `json:"estimator_path,omitempty"`
	Timeout       *string `json:"timeout,omitempty"` // duration string like "30s"; empty waits forever

	Locale     *string `json:"locale,omitempty"`
	FontFamily *string `json:"font_family,omitempty"`
	Width      *int    `json:"width,omitempty"`
	Height     *int    `json:"height,omitempty"`
	AssetsHost *string `json:"assets_host,omitempty"`
	Theme      *string `json:"theme,omitempty"`
	PNG        *bool   `json:"png,omitempty"`

	// OutputDir persists artifacts when set; empty persists nothing.
	OutputDir *string `json:"output_dir,omitempty"`
	WarnEmpty *bool   `json:"warn_empty,omitempty"`
}

func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }
func ptrBool(v bool) *bool       { return &v }

// DefaultReportConfig returns a config with every field populated.
func DefaultReportConfig() *ReportConfig {
	rc := render.DefaultConfig()
	return &ReportConfig{
		EstimatorPath: ptrString(DefaultEstimatorPath),
		Timeout:       ptrString(""),
		Locale:        ptrString(rc.Locale.String()),
		FontFamily:    ptrString(rc.FontFamily),
		Width:         ptrInt(rc.Width),
		Height:        ptrInt(rc.Height),
		AssetsHost:    ptrString(rc.AssetsHost),
		Theme:         ptrString(rc.Theme),
		PNG:           ptrBool(rc.PNG),
		OutputDir:     ptrString(""),
		WarnEmpty:     ptrBool(true),
	}
}

// LoadReportConfig reads a JSON config through fsys. The file must end in
// .json and be at most 1 MiB.
func LoadReportConfig(fsys fsutil.FileSystem, path string) (*ReportConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ReportConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Merge copies every non-nil field of other onto c.
func (c *ReportConfig) Merge(other *ReportConfig) {
	if other == nil {
		return
	}
	if other.EstimatorPath != nil {
		c.EstimatorPath = other.EstimatorPath
	}
	if other.Timeout != nil {
		c.Timeout = other.Timeout
	}
	if other.Locale != nil {
		c.Locale = other.Locale
	}
	if other.FontFamily != nil {
		c.FontFamily = other.FontFamily
	}
	if other.Width != nil {
		c.Width = other.Width
	}
	if other.Height != nil {
		c.Height = other.Height
	}
	if other.AssetsHost != nil {
		c.AssetsHost = other.AssetsHost
	}
	if other.Theme != nil {
		c.Theme = other.Theme
	}
	if other.PNG != nil {
		c.PNG = other.PNG
	}
	if other.OutputDir != nil {
		c.OutputDir = other.OutputDir
	}
	if other.WarnEmpty != nil {
		c.WarnEmpty = other.WarnEmpty
	}
}

// Validate checks the fields that are set.
func (c *ReportConfig) Validate() error {
	if c.EstimatorPath != nil && *c.EstimatorPath == "" {
		return fmt.Errorf("estimator_path must not be empty")
	}
	if c.Timeout != nil && *c.Timeout != "" {
		d, err := time.ParseDuration(*c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", *c.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must be non-negative, got %s", d)
		}
	}
	if c.Width != nil && *c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", *c.Width)
	}
	if c.Height != nil && *c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", *c.Height)
	}
	if c.AssetsHost != nil && *c.AssetsHost == "" {
		return fmt.Errorf("assets_host must not be empty")
	}
	return nil
}

// GetEstimatorPath returns the estimator executable path.
func (c *ReportConfig) GetEstimatorPath() string {
	if c.EstimatorPath == nil || *c.EstimatorPath == "" {
		return DefaultEstimatorPath
	}
	return *c.EstimatorPath
}

// GetTimeout returns the estimator timeout; zero means wait indefinitely.
func (c *ReportConfig) GetTimeout() time.Duration {
	if c.Timeout == nil || *c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(*c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GetOutputDir returns the artifact directory, or "" when nothing should
// be written.
func (c *ReportConfig) GetOutputDir() string {
	if c.OutputDir == nil {
		return ""
	}
	return *c.OutputDir
}

// GetWarnEmpty reports whether an empty dataset should log a warning.
func (c *ReportConfig) GetWarnEmpty() bool {
	if c.WarnEmpty == nil {
		return true
	}
	return *c.WarnEmpty
}

// RenderConfig builds the renderer configuration.
func (c *ReportConfig) RenderConfig() render.Config {
	rc := render.DefaultConfig()
	if c.Locale != nil {
		rc.Locale = render.ParseLocale(*c.Locale)
	}
	if c.FontFamily != nil {
		rc.FontFamily = *c.FontFamily
	}
	if c.Width != nil {
		rc.Width = *c.Width
	}
	if c.Height != nil {
		rc.Height = *c.Height
	}
	if c.AssetsHost != nil && *c.AssetsHost != "" {
		rc.AssetsHost = *c.AssetsHost
	}
	if c.Theme != nil && *c.Theme != "" {
		rc.Theme = *c.Theme
	}
	if c.PNG != nil {
		rc.PNG = *c.PNG
	}
	return rc
}
