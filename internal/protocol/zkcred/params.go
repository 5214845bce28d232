package zkcred

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"

	"github.com/cloudflare/circl/oprf"
	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/domain/types"
)

const (
	formatVersion byte = 0x00

	paramsIDLen = 8
	elementLen  = 32
	scalarLen   = 32
	proofLen    = 2 * scalarLen
	outputLen   = 64

	// CredentialLifetime is the longest window an issued credential covers.
	CredentialLifetime = 7 * 24 * time.Hour

	secondsPerDay = 24 * 60 * 60
)

var suite = oprf.SuiteRistretto255

// ParamsID names one issuer key. It travels with requests and responses so
// every party can tell which parameters a value was built against.
type ParamsID [paramsIDLen]byte

// String returns the hex form of the identifier.
func (id ParamsID) String() string { return hex.EncodeToString(id[:]) }

func paramsIDOf(serialised []byte) ParamsID {
	sum := sha256.Sum256(serialised)
	var id ParamsID
	copy(id[:], sum[:paramsIDLen])
	return id
}

// ServerPublicParams is the published half of an issuer key for one
// environment. It is immutable after construction.
type ServerPublicParams struct {
	env types.Environment
	key *oprf.PublicKey
	raw []byte
	id  ParamsID
}

// DeserializeServerPublicParams decodes [version][env tag][public key].
func DeserializeServerPublicParams(b []byte) (*ServerPublicParams, error) {
	if len(b) != 2+elementLen {
		return nil, errors.Wrapf(ErrDecode, "public params: want %d bytes, got %d", 2+elementLen, len(b))
	}
	if b[0] != formatVersion {
		return nil, errors.Wrapf(ErrDecode, "public params: unsupported version %d", b[0])
	}
	env, ok := types.EnvironmentFromTag(b[1])
	if !ok {
		return nil, errors.Wrapf(ErrDecode, "public params: unknown environment tag %#x", b[1])
	}

	e := suite.Group().NewElement()
	if err := e.UnmarshalBinary(b[2:]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "public params: key: %v", err)
	}
	if e.IsIdentity() {
		return nil, errors.Wrap(ErrDecode, "public params: identity key")
	}
	key := new(oprf.PublicKey)
	if err := key.UnmarshalBinary(suite, b[2:]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "public params: key: %v", err)
	}

	raw := append([]byte(nil), b...)
	return &ServerPublicParams{env: env, key: key, raw: raw, id: paramsIDOf(raw)}, nil
}

// Serialize returns the encoded parameters.
func (p *ServerPublicParams) Serialize() []byte { return append([]byte(nil), p.raw...) }

// Environment returns the environment the parameters were published for.
func (p *ServerPublicParams) Environment() types.Environment { return p.env }

// ID returns the parameter identifier.
func (p *ServerPublicParams) ID() ParamsID { return p.id }

// ServerSecretParams is an issuer key. Only the issuer holds it.
type ServerSecretParams struct {
	env    types.Environment
	key    *oprf.PrivateKey
	public *ServerPublicParams
}

// GenerateServerSecretParams creates a fresh issuer key for env.
func GenerateServerSecretParams(env types.Environment, rnd io.Reader) (*ServerSecretParams, error) {
	if !env.Valid() {
		return nil, errors.Wrapf(types.ErrUnknownEnvironment, "%q", env)
	}
	key, err := oprf.GenerateKey(suite, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate issuer key")
	}
	return newServerSecretParams(env, key)
}

// DeserializeServerSecretParams decodes [version][env tag][scalar].
func DeserializeServerSecretParams(b []byte) (*ServerSecretParams, error) {
	if len(b) != 2+scalarLen {
		return nil, errors.Wrapf(ErrDecode, "secret params: want %d bytes, got %d", 2+scalarLen, len(b))
	}
	if b[0] != formatVersion {
		return nil, errors.Wrapf(ErrDecode, "secret params: unsupported version %d", b[0])
	}
	env, ok := types.EnvironmentFromTag(b[1])
	if !ok {
		return nil, errors.Wrapf(ErrDecode, "secret params: unknown environment tag %#x", b[1])
	}

	s := suite.Group().NewScalar()
	if err := s.UnmarshalBinary(b[2:]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "secret params: key: %v", err)
	}
	if s.IsZero() {
		return nil, errors.Wrap(ErrDecode, "secret params: zero key")
	}
	key := new(oprf.PrivateKey)
	if err := key.UnmarshalBinary(suite, b[2:]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "secret params: key: %v", err)
	}
	return newServerSecretParams(env, key)
}

func newServerSecretParams(env types.Environment, key *oprf.PrivateKey) (*ServerSecretParams, error) {
	pub, err := key.Public().MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "encode issuer public key")
	}
	public, err := DeserializeServerPublicParams(append([]byte{formatVersion, env.Tag()}, pub...))
	if err != nil {
		return nil, err
	}
	return &ServerSecretParams{env: env, key: key, public: public}, nil
}

// Serialize encodes the secret key. The result must be stored encrypted.
func (s *ServerSecretParams) Serialize() ([]byte, error) {
	k, err := s.key.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "encode issuer key")
	}
	return append([]byte{formatVersion, s.env.Tag()}, k...), nil
}

// Environment returns the environment the key issues for.
func (s *ServerSecretParams) Environment() types.Environment { return s.env }

// Public returns the matching public parameters.
func (s *ServerSecretParams) Public() *ServerPublicParams { return s.public }
