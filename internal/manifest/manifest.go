// Package manifest loads the reference manifest of expected game file
// sizes and build ids. The manifest is fetched from a well-known URL
// with a short timeout and falls back to a local copy; the loaded
// result is cached for the process lifetime.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/erni27/imcache"
	"github.com/rs/zerolog"
)

// DefaultURL is the published location of game_file_sizes.json.
const DefaultURL = "https://raw.githubusercontent.com/Hapfel1/er-save-manager/main/game_file_sizes.json"

// FetchTimeout bounds the network fetch. A slow mirror must degrade to
// the local fallback, not stall a diagnostic run.
const FetchTimeout = 3 * time.Second

const manifestFileName = "game_file_sizes.json"

// cacheKey is the single memoization key; one provider holds one manifest.
const cacheKey = "manifest"

// SizeRange is the expected size window for one game file, in KiB.
// ExactKB, when non-zero, pins the size instead of a window.
type SizeRange struct {
	MinKB   int64 `json:"min_kb"`
	MaxKB   int64 `json:"max_kb"`
	ExactKB int64 `json:"exact_kb,omitempty"`
}

// Contains reports whether a file of sizeKB falls inside the range.
func (r SizeRange) Contains(sizeKB int64) bool {
	if r.ExactKB > 0 {
		return sizeKB == r.ExactKB
	}
	return sizeKB >= r.MinKB && sizeKB <= r.MaxKB
}

// GameEntry holds the reference data for one title: a build id and a
// size range per file key.
type GameEntry struct {
	BuildID int64
	Files   map[string]SizeRange
}

// UnmarshalJSON decodes the flat on-disk shape, where "build_id" sits
// next to the file-key entries:
//
//	{"exe": {"min_kb": 81000, "max_kb": 84000}, "build_id": 12345}
func (e *GameEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Files = make(map[string]SizeRange, len(raw))
	for key, msg := range raw {
		if key == "build_id" {
			if err := json.Unmarshal(msg, &e.BuildID); err != nil {
				return err
			}
			continue
		}
		var sr SizeRange
		if err := json.Unmarshal(msg, &sr); err != nil {
			return err
		}
		e.Files[key] = sr
	}
	return nil
}

// Manifest maps manifest keys ("elden_ring", "dark_souls_3", ...) to
// their reference entries. A missing key is not an error; size checks
// downgrade to "no reference available".
type Manifest map[string]GameEntry

// Provider loads and memoizes the manifest. Safe for concurrent use:
// redundant loads are idempotent and last-writer-wins.
type Provider struct {
	url        string
	localPaths []string
	fileOnly   bool
	client     *http.Client
	cache      *imcache.Cache[string, Manifest]
	log        zerolog.Logger
}

// NewProvider builds a provider. Empty url selects DefaultURL; nil
// localPaths selects DefaultLocalPaths().
func NewProvider(lg zerolog.Logger, url string, localPaths []string) *Provider {
	if url == "" {
		url = DefaultURL
	}
	if localPaths == nil {
		localPaths = DefaultLocalPaths()
	}
	return &Provider{
		url:        url,
		localPaths: localPaths,
		client:     &http.Client{Timeout: FetchTimeout},
		cache:      imcache.New[string, Manifest](),
		log:        lg.With().Str("component", "manifest").Logger(),
	}
}

// NewFileProvider builds a provider pinned to one local manifest file,
// never touching the network.
func NewFileProvider(lg zerolog.Logger, path string) *Provider {
	return &Provider{
		localPaths: []string{path},
		fileOnly:   true,
		cache:      imcache.New[string, Manifest](),
		log:        lg.With().Str("component", "manifest").Logger(),
	}
}

// DefaultLocalPaths returns the ordered candidate locations for a
// local manifest copy: next to the executable, the working directory,
// then the user data dir.
func DefaultLocalPaths() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), manifestFileName))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, manifestFileName))
	}
	paths = append(paths, filepath.Join(xdg.DataHome, "fscheckup", manifestFileName))
	return paths
}

// Load returns the manifest, fetching it on first use. Network first,
// then each local candidate, else an empty manifest. Never fails.
func (p *Provider) Load(ctx context.Context) Manifest {
	if m, ok := p.cache.Get(cacheKey); ok {
		return m
	}
	m := p.load(ctx)
	p.cache.Set(cacheKey, m, imcache.WithNoExpiration())
	return m
}

func (p *Provider) load(ctx context.Context) Manifest {
	if !p.fileOnly {
		if m, err := p.fetch(ctx); err == nil {
			p.log.Debug().Str("url", p.url).Int("games", len(m)).Msg("manifest fetched")
			return m
		} else {
			p.log.Warn().Err(err).Msg("manifest fetch failed, trying local copies")
		}
	}
	for _, path := range p.localPaths {
		m, err := parseFile(path)
		if err != nil {
			continue
		}
		p.log.Debug().Str("path", path).Msg("manifest loaded from local copy")
		return m
	}
	p.log.Warn().Msg("no manifest available, size checks will be skipped")
	return Manifest{}
}

func (p *Provider) fetch(ctx context.Context) (Manifest, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status " + resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parse(body)
}

func parseFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Entry returns the size range recorded for (gameKey, fileKey), or
// false when either key is absent. Never fails for missing keys.
func (p *Provider) Entry(ctx context.Context, gameKey, fileKey string) (SizeRange, bool) {
	game, ok := p.Load(ctx)[gameKey]
	if !ok {
		return SizeRange{}, false
	}
	sr, ok := game.Files[fileKey]
	if !ok || (sr.MinKB == 0 && sr.MaxKB == 0 && sr.ExactKB == 0) {
		return SizeRange{}, false
	}
	return sr, true
}

// BuildID returns the reference build id for gameKey. Zero is the
// "unset" sentinel, covering both a missing key and no recorded build.
func (p *Provider) BuildID(ctx context.Context, gameKey string) int64 {
	return p.Load(ctx)[gameKey].BuildID
}

// Invalidate drops the memoized manifest so the next Load re-fetches.
// Exists for tests and for an explicit user refresh; nothing
// invalidates the cache during a run.
func (p *Provider) Invalidate() {
	p.cache.Remove(cacheKey)
}
