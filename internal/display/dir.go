package display

import (
	"context"
	"fmt"

	"github.com/banshee-data/position.report/internal/fsutil"
	"github.com/banshee-data/position.report/internal/monitoring"
	"github.com/banshee-data/position.report/internal/render"
	"github.com/banshee-data/position.report/internal/security"
)

// DirDisplay writes artifacts into Dir.
type DirDisplay struct {
	Dir string
	FS  fsutil.FileSystem
}

// NewDirDisplay returns a DirDisplay writing to dir on the OS filesystem.
func NewDirDisplay(dir string) *DirDisplay {
	return &DirDisplay{Dir: dir, FS: fsutil.OSFileSystem{}}
}

// Show implements Display. Each artifact name is sanitized and must stay
// inside Dir.
func (d *DirDisplay) Show(ctx context.Context, artifacts ...render.Artifact) error {
	if d.Dir == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := d.FS.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := security.JoinWithin(d.Dir, a.Name)
		if err != nil {
			return fmt.Errorf("artifact %q: %w", a.Name, err)
		}
		if err := d.FS.WriteFile(path, a.Body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		monitoring.Logf("wrote %s (%d bytes)", path, len(a.Body))
	}
	return nil
}
