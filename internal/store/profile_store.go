package store

import (
	"path/filepath"
	"sync"

	"github.com/ctstone/libsignal/internal/domain"
)

const profilesFile = "profiles.json"

// ProfileFileStore persists issuer profiles to a single JSON file.
type ProfileFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewProfileFileStore returns a ProfileFileStore rooted at dir.
func NewProfileFileStore(dir string) *ProfileFileStore {
	return &ProfileFileStore{dir: dir}
}

// SaveProfile stores or replaces the profile for profile.Aci.
func (s *ProfileFileStore) SaveProfile(profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, profilesFile)
	profiles := make(map[string]domain.Profile)
	if err := readJSON(path, &profiles); err != nil {
		return err
	}
	profiles[profile.Aci.String()] = profile
	return writeJSON(path, profiles, 0o600)
}

// LoadProfile returns the profile for aci, if any.
func (s *ProfileFileStore) LoadProfile(aci domain.Aci) (domain.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[string]domain.Profile)
	if err := readJSON(filepath.Join(s.dir, profilesFile), &profiles); err != nil {
		return domain.Profile{}, false, err
	}
	p, ok := profiles[aci.String()]
	return p, ok, nil
}

var _ domain.ProfileStore = (*ProfileFileStore)(nil)
