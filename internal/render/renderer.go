// Package render turns a record set into the spatial comparison chart and
// the per-target error bar chart. Each chart is first reduced to a plain
// view model and then encoded as interactive HTML (go-echarts) and,
// optionally, a static PNG (gonum/plot).
package render

import (
	"fmt"

	"golang.org/x/text/message"
)

// LabelOffset is added to an estimated position to place its target label
// clear of the marker, in coordinate units on every axis.
const LabelOffset = 0.5

// Marker styles shared by the HTML and PNG encodings.
const (
	trueColor      = "green"
	estimatedColor = "red"
	labelColor     = "red"
	barColor       = "skyblue"
	trueSymbol     = "circle"
	estSymbol      = "triangle"
	markerSize     = 10
)

// Renderer produces chart artifacts. It holds no per-run state besides
// the optional run ID shown in subtitles.
type Renderer struct {
	cfg   Config
	p     *message.Printer
	runID string
}

// NewRenderer validates cfg and returns a Renderer using it.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return &Renderer{
		cfg: cfg,
		p:   message.NewPrinter(cfg.Locale),
	}, nil
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() Config { return r.cfg }

// SetRunID sets the identifier printed in chart subtitles.
func (r *Renderer) SetRunID(id string) { r.runID = id }

// T returns localized chart copy for key.
func (r *Renderer) T(key string, args ...interface{}) string {
	return r.p.Sprintf(key, args...)
}

func (r *Renderer) subtitle(extra string) string {
	s := ""
	if r.runID != "" {
		s = r.T(keyRunSubtitle, r.runID)
	}
	if extra != "" {
		if s != "" {
			s += "\n"
		}
		s += extra
	}
	return s
}

// PageTitle returns the localized report title.
func (r *Renderer) PageTitle() string { return r.T(keyPageTitle) }
