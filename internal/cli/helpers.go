package cli

import (
	"github.com/rs/zerolog"

	"github.com/hapfel1/fscheckup/internal/engine"
	"github.com/hapfel1/fscheckup/internal/host"
	"github.com/hapfel1/fscheckup/internal/manifest"
	"github.com/hapfel1/fscheckup/internal/profile"
	"github.com/hapfel1/fscheckup/internal/steam"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// session bundles the collaborators every diagnostic subcommand needs.
type session struct {
	log      zerolog.Logger
	locator  *steam.Locator
	intro    host.Introspector
	provider *manifest.Provider
}

func newSession(opts *GlobalOptions) *session {
	log := opts.Logger()
	locator := steam.NewLocator(log)
	provider := manifest.NewProvider(log, opts.ManifestURL, nil)
	if opts.ManifestFile != "" {
		provider = manifest.NewFileProvider(log, opts.ManifestFile)
	}
	return &session{
		log:      log,
		locator:  locator,
		intro:    host.New(log, locator),
		provider: provider,
	}
}

// engineFor resolves a game key into a ready engine. Empty folder and
// save paths are filled in from the Steam libraries when possible.
func (s *session) engineFor(gameKey, gameFolder, saveFile string) (*engine.Engine, types.GameProfile, string, string, error) {
	p, err := profile.ByKey(gameKey)
	if err != nil {
		return nil, types.GameProfile{}, "", "", err
	}
	if gameFolder == "" || saveFile == "" {
		foundFolder, foundSave := s.locator.Autoscan(p)
		if gameFolder == "" {
			gameFolder = foundFolder
		}
		if saveFile == "" {
			saveFile = foundSave
		}
	}
	e := engine.New(s.log, p, gameFolder, saveFile, s.provider, s.intro,
		profile.ExtraChecks(gameKey)...)
	return e, p, gameFolder, saveFile, nil
}
