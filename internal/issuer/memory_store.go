package issuer

import (
	"sync"

	"github.com/ctstone/libsignal/internal/domain"
)

// MemoryStore keeps profiles in memory; they are lost on exit.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[domain.Aci]domain.Profile
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[domain.Aci]domain.Profile)}
}

func (s *MemoryStore) SaveProfile(p domain.Profile) error {
	p.Versions = append([]domain.ProfileKeyVersion(nil), p.Versions...)
	s.mu.Lock()
	s.profiles[p.Aci] = p
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) LoadProfile(aci domain.Aci) (domain.Profile, bool, error) {
	s.mu.RLock()
	p, ok := s.profiles[aci]
	s.mu.RUnlock()
	p.Versions = append([]domain.ProfileKeyVersion(nil), p.Versions...)
	return p, ok, nil
}

var _ domain.ProfileStore = (*MemoryStore)(nil)
