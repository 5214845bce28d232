package params

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// ErrUnknownEnvironment is returned for an environment with no table entry.
var ErrUnknownEnvironment = types.ErrUnknownEnvironment

const (
	stagingChatURL    = "https://chat.staging.signal.org"
	productionChatURL = "https://chat.signal.org"

	stagingParams    = "AAGIgb0MskH0n5hHEyFcqRppKJWStxbKTZquL8RVsrAAOg=="
	productionParams = "AAKSKx3mWlNUS/73EXeNx+NuWSVnYx9Euko6LSzIWHRfRg=="
)

// Entry is what the client needs to know about one environment.
type Entry struct {
	ChatURL string `toml:"chat_url"`
	Params  string `toml:"params"`
}

// Table maps environments to their entries.
type Table map[types.Environment]Entry

// DefaultTable returns the built-in staging and production entries.
func DefaultTable() Table {
	return Table{
		types.Staging:    {ChatURL: stagingChatURL, Params: stagingParams},
		types.Production: {ChatURL: productionChatURL, Params: productionParams},
	}
}

// Merge returns a copy of t with non-empty override fields applied.
func (t Table) Merge(overrides map[string]Entry) (Table, error) {
	out := make(Table, len(t))
	for env, e := range t {
		out[env] = e
	}
	for name, o := range overrides {
		env, err := types.ParseEnvironment(name)
		if err != nil {
			return nil, err
		}
		e := out[env]
		if o.ChatURL != "" {
			e.ChatURL = strings.TrimRight(o.ChatURL, "/")
		}
		if o.Params != "" {
			e.Params = strings.TrimSpace(o.Params)
		}
		out[env] = e
	}
	return out, nil
}

type loaded struct {
	params *zkcred.ServerPublicParams
	err    error
}

// Store decodes table entries on first use and caches the outcome.
// It is safe for concurrent use.
type Store struct {
	table Table

	mu    sync.Mutex
	cache map[types.Environment]loaded
}

// NewStore wraps table. The table must not be modified afterwards.
func NewStore(table Table) *Store {
	return &Store{table: table, cache: make(map[types.Environment]loaded)}
}

// Load returns the decoded public parameters for env.
func (s *Store) Load(env types.Environment) (*zkcred.ServerPublicParams, error) {
	entry, ok := s.table[env]
	if !ok || !env.Valid() {
		return nil, errors.Wrapf(ErrUnknownEnvironment, "%q", env)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.cache[env]; ok {
		return l.params, l.err
	}
	p, err := decode(env, entry.Params)
	s.cache[env] = loaded{params: p, err: err}
	return p, err
}

// ChatURL returns the chat service base URL for env.
func (s *Store) ChatURL(env types.Environment) (string, error) {
	entry, ok := s.table[env]
	if !ok || !env.Valid() {
		return "", errors.Wrapf(ErrUnknownEnvironment, "%q", env)
	}
	if entry.ChatURL == "" {
		return "", errors.Errorf("no chat URL configured for %s", env)
	}
	return entry.ChatURL, nil
}

func decode(env types.Environment, blob string) (*zkcred.ServerPublicParams, error) {
	raw, err := crypto.FromB64(strings.TrimSpace(blob))
	if err != nil {
		return nil, errors.Wrapf(zkcred.ErrDecode, "%s params: %v", env, err)
	}
	p, err := zkcred.DeserializeServerPublicParams(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s params", env)
	}
	if p.Environment() != env {
		return nil, errors.Wrapf(zkcred.ErrParameterMismatch, "%s params are tagged %s", env, p.Environment())
	}
	return p, nil
}
