// Package display shows rendered chart artifacts to the user.
package display

import (
	"context"

	"github.com/banshee-data/position.report/internal/render"
)

// Display presents artifacts. Show returns once the artifacts have been
// dismissed or persisted.
type Display interface {
	Show(ctx context.Context, artifacts ...render.Artifact) error
}

// NopDisplay discards artifacts.
type NopDisplay struct{}

// Show implements Display.
func (NopDisplay) Show(context.Context, ...render.Artifact) error { return nil }

// Multi shows artifacts on each display in turn, stopping at the first
// error.
type Multi []Display

// Show implements Display.
func (m Multi) Show(ctx context.Context, artifacts ...render.Artifact) error {
	for _, d := range m {
		if err := d.Show(ctx, artifacts...); err != nil {
			return err
		}
	}
	return nil
}
