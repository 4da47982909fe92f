// Package pipeline wires one report run: invoke the estimator, parse its
// output, derive bounds, render both charts and hand them to a display.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/position.report/internal/display"
	"github.com/banshee-data/position.report/internal/estimator"
	"github.com/banshee-data/position.report/internal/monitoring"
	"github.com/banshee-data/position.report/internal/records"
	"github.com/banshee-data/position.report/internal/render"
	"github.com/banshee-data/position.report/internal/timeutil"
)

// Estimator produces the raw estimator output.
type Estimator interface {
	Run(ctx context.Context) (*estimator.Result, error)
}

// Pipeline runs the stages in order. Any estimator or parse failure stops
// the run before anything is rendered.
type Pipeline struct {
	Estimator Estimator
	Renderer  *render.Renderer
	Display   display.Display

	// OnEmpty is called when the estimator reports zero targets. The
	// charts are still rendered and shown.
	OnEmpty func(runID string)

	Logger monitoring.Logger
	// Clock times the run; nil uses the system clock.
	Clock timeutil.Clock
	// NewRunID overrides run ID generation.
	NewRunID func() string
}

// Outcome describes a completed run.
type Outcome struct {
	RunID     string
	Records   records.RecordSet
	Bounds    *records.AxisBounds
	Summary   *records.Summary
	Artifacts []render.Artifact
	Duration  time.Duration
}

// Run executes one report. Errors are returned wrapped; inspect them with
// errors.As for *estimator.ExternalProcessError, *estimator.TimeoutError
// and *records.MalformedDataError.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	if p.Estimator == nil || p.Renderer == nil {
		return nil, fmt.Errorf("pipeline requires an estimator and a renderer")
	}

	clock := p.clock()
	start := clock.Now()
	out := &Outcome{RunID: p.runID()}
	log := p.logger()
	monitoring.Logf("[%s] running estimator", out.RunID)

	res, err := p.Estimator.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("estimator: %w", err)
	}
	log.Debugf("[%s] estimator finished in %s with %d bytes of output", out.RunID, res.Duration, len(res.Stdout))

	set, err := records.Parse(res.Stdout)
	if err != nil {
		return nil, fmt.Errorf("parse estimator output: %w", err)
	}
	out.Records = set
	monitoring.Logf("[%s] parsed %d targets", out.RunID, set.Len())

	bounds, err := records.ComputeBounds(set)
	var ide *records.InsufficientDataError
	switch {
	case err == nil:
		out.Bounds = &bounds
	case errors.As(err, &ide):
		if p.OnEmpty != nil {
			p.OnEmpty(out.RunID)
		}
	default:
		return nil, fmt.Errorf("bounds: %w", err)
	}

	if sum, err := records.Summarize(set); err == nil {
		out.Summary = &sum
		log.Debugf("[%s] error mean=%.3f max=%.3f (%s)", out.RunID, sum.Mean, sum.Max, sum.Worst)
	}

	p.Renderer.SetRunID(out.RunID)
	page, err := p.Renderer.ReportPage(set, out.Bounds)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	spatial, err := p.Renderer.SpatialComparisonChart(set, out.Bounds)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	errs, err := p.Renderer.ErrorBarChart(set)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out.Artifacts = append(out.Artifacts, page)
	out.Artifacts = append(out.Artifacts, spatial...)
	out.Artifacts = append(out.Artifacts, errs...)

	if p.Display != nil {
		if err := p.Display.Show(ctx, out.Artifacts...); err != nil {
			return nil, fmt.Errorf("display: %w", err)
		}
	}

	out.Duration = clock.Since(start)
	monitoring.Logf("[%s] done in %s", out.RunID, out.Duration.Round(time.Millisecond))
	return out, nil
}

// WarnEmpty is an OnEmpty hook that logs a warning.
func WarnEmpty(runID string) {
	monitoring.Logf("[%s] warning: estimator reported no targets; charts will be empty", runID)
}

func (p *Pipeline) runID() string {
	if p.NewRunID != nil {
		return p.NewRunID()
	}
	return uuid.NewString()
}

func (p *Pipeline) clock() timeutil.Clock {
	if p.Clock == nil {
		return timeutil.RealClock{}
	}
	return p.Clock
}

func (p *Pipeline) logger() monitoring.Logger {
	if p.Logger == nil {
		return monitoring.Nop{}
	}
	return p.Logger
}
