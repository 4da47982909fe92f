package render

import (
	"fmt"

	"golang.org/x/text/language"
)

// DefaultAssetsHost serves the echarts and echarts-gl scripts referenced by
// the HTML charts.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Config is the process-wide rendering configuration. Build it once at
// startup and hand it to NewRenderer; nothing here is global state.
type Config struct {
	Locale language.Tag
	// FontFamily is applied to chart titles, legends and labels.
	// Empty leaves the browser default.
	FontFamily string
	Width      int // pixels
	Height     int // pixels
	AssetsHost string
	Theme      string
	// PNG adds static gonum/plot renderings next to the HTML charts.
	PNG bool
}

// DefaultConfig returns English copy at 1000x720 with HTML output only.
func DefaultConfig() Config {
	return Config{
		Locale:     language.English,
		Width:      1000,
		Height:     720,
		AssetsHost: DefaultAssetsHost,
		Theme:      "white",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.AssetsHost == "" {
		return fmt.Errorf("assets host is required")
	}
	return nil
}

func (c Config) widthPx() string  { return fmt.Sprintf("%dpx", c.Width) }
func (c Config) heightPx() string { return fmt.Sprintf("%dpx", c.Height) }
