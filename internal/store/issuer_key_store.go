package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
	"github.com/ctstone/libsignal/internal/util/memzero"
)

// IssuerKeyFileStore keeps one passphrase-sealed issuer key per environment.
type IssuerKeyFileStore struct {
	dir string
	kdf scryptParams
	mu  sync.Mutex
}

// NewIssuerKeyFileStore returns an IssuerKeyFileStore rooted at dir.
func NewIssuerKeyFileStore(dir string) *IssuerKeyFileStore {
	return &IssuerKeyFileStore{dir: dir, kdf: defaultScrypt()}
}

// Path returns the file the key for env is stored in.
func (s *IssuerKeyFileStore) Path(env domain.Environment) string {
	return filepath.Join(s.dir, "issuer-"+env.String()+".json.enc")
}

// SaveIssuerKey seals and writes secret, replacing any key for the same
// environment.
func (s *IssuerKeyFileStore) SaveIssuerKey(passphrase string, secret *zkcred.ServerSecretParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := secret.Serialize()
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	env := secret.Environment()
	b, err := seal(passphrase, issuerKeyLabel(env), raw, s.kdf)
	if err != nil {
		return errors.Wrap(err, "seal issuer key")
	}
	return writeFile(s.Path(env), b, 0o600)
}

// LoadIssuerKey reads and opens the key for env.
func (s *IssuerKeyFileStore) LoadIssuerKey(passphrase string, env domain.Environment) (*zkcred.ServerSecretParams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.Path(env))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s issuer key", env)
	}
	raw, err := open(passphrase, issuerKeyLabel(env), b)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)

	secret, err := zkcred.DeserializeServerSecretParams(raw)
	if err != nil {
		return nil, err
	}
	if secret.Environment() != env {
		return nil, errors.Wrapf(zkcred.ErrParameterMismatch, "key file for %s holds a %s key", env, secret.Environment())
	}
	return secret, nil
}

func issuerKeyLabel(env domain.Environment) string { return "issuer-key/" + env.String() }

var _ domain.IssuerKeyStore = (*IssuerKeyFileStore)(nil)
