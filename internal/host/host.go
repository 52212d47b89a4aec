// Package host provides platform-aware introspection primitives:
// running process names, installed Steam build ids, privilege
// elevation of a named process, scheduled-task lookups, and free disk
// space. The diagnostic engine talks to the Introspector interface and
// never branches on the platform itself; the platform picks the
// implementation at build time.
package host

import (
	"context"
	"errors"
	"time"

	"github.com/erni27/imcache"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/hapfel1/fscheckup/internal/steam"
)

// ErrNotSupported marks a capability the current platform does not
// have. Callers degrade the corresponding check to an informational
// result.
var ErrNotSupported = errors.New("not supported on this platform")

// ElevationProbeTimeout bounds the privilege probe. On timeout the
// probe reports ElevationUnknown instead of blocking the run.
const ElevationProbeTimeout = 5 * time.Second

// Elevation is the outcome of probing a named process for elevated
// privileges.
type Elevation int

const (
	ElevationUnknown Elevation = iota
	ElevationNotRunning
	ElevationElevated
	ElevationNormal
	ElevationNotSupported
)

func (e Elevation) String() string {
	switch e {
	case ElevationNotRunning:
		return "not_running"
	case ElevationElevated:
		return "elevated"
	case ElevationNormal:
		return "normal"
	case ElevationNotSupported:
		return "not_supported"
	default:
		return "unknown"
	}
}

// Introspector is the capability surface the diagnostic engine depends
// on. One implementation exists per target platform.
type Introspector interface {
	// RunningProcesses enumerates the names of all live processes.
	// Per-process read failures (a process exiting mid-scan) are
	// skipped silently.
	RunningProcesses(ctx context.Context) ([]string, error)

	// InstalledBuildID reads the installed Steam build id for an app,
	// memoized for the process lifetime.
	InstalledBuildID(appID uint32) (int64, bool)

	// ProcessElevation probes whether any running process with the
	// given name holds elevated privileges. Bounded by
	// ElevationProbeTimeout.
	ProcessElevation(ctx context.Context, name string) Elevation

	// ScheduledTaskQuery reports whether the platform's scheduled-task
	// registry contains an entry matching substring
	// (case-insensitive). ErrNotSupported where no such facility
	// exists.
	ScheduledTaskQuery(ctx context.Context, substring string) (bool, error)

	// FreeDiskSpace returns the free bytes at path. ErrNotSupported on
	// platforms where the engine skips the disk check.
	FreeDiskSpace(path string) (uint64, error)

	// HasElevationConcept reports whether this platform distinguishes
	// elevated processes at all.
	HasElevationConcept() bool
}

type buildRecord struct {
	id int64
	ok bool
}

type introspector struct {
	steam  *steam.Locator
	builds *imcache.Cache[uint32, buildRecord]
	log    zerolog.Logger
}

// New returns the Introspector for the current platform.
func New(lg zerolog.Logger, locator *steam.Locator) Introspector {
	return &introspector{
		steam:  locator,
		builds: imcache.New[uint32, buildRecord](),
		log:    lg.With().Str("component", "host").Logger(),
	}
}

func (h *introspector) RunningProcesses(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			// process exited mid-scan
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (h *introspector) InstalledBuildID(appID uint32) (int64, bool) {
	if rec, ok := h.builds.Get(appID); ok {
		return rec.id, rec.ok
	}
	id, ok := h.steam.BuildID(appID)
	h.builds.Set(appID, buildRecord{id: id, ok: ok}, imcache.WithNoExpiration())
	if ok {
		h.log.Debug().Uint32("app_id", appID).Int64("build_id", id).Msg("installed build id")
	}
	return id, ok
}
