//go:build !windows

package host

import "context"

// Privilege elevation, scheduled tasks, and the save-drive space check
// are Windows concepts; elsewhere the engine reports them as not
// applicable.

func (h *introspector) HasElevationConcept() bool { return false }

func (h *introspector) ProcessElevation(ctx context.Context, name string) Elevation {
	return ElevationNotSupported
}

func (h *introspector) ScheduledTaskQuery(ctx context.Context, substring string) (bool, error) {
	return false, ErrNotSupported
}

func (h *introspector) FreeDiskSpace(path string) (uint64, error) {
	return 0, ErrNotSupported
}
