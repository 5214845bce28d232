package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Environment names a deployment of the chat service.
type Environment string

const (
	Staging    Environment = "staging"
	Production Environment = "production"
)

var (
	// ErrUnknownEnvironment is returned for anything but staging or production.
	ErrUnknownEnvironment = errors.New("unknown environment")
	// ErrInvalidAci is returned when an ACI is not a UUID.
	ErrInvalidAci = errors.New("invalid ACI")
)

// ParseEnvironment accepts "staging", "production" or "prod".
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staging":
		return Staging, nil
	case "production", "prod":
		return Production, nil
	}
	return "", errors.Wrapf(ErrUnknownEnvironment, "%q", s)
}

// Environments lists every recognised environment.
func Environments() []Environment { return []Environment{Staging, Production} }

// String returns the string form of the environment.
func (e Environment) String() string { return string(e) }

// Valid reports whether e is staging or production.
func (e Environment) Valid() bool { return e == Staging || e == Production }

// Tag is the one-byte environment marker embedded in serialised parameters.
// It returns 0 for an unrecognised environment.
func (e Environment) Tag() byte {
	switch e {
	case Staging:
		return 0x01
	case Production:
		return 0x02
	}
	return 0
}

// EnvironmentFromTag is the inverse of Environment.Tag.
func EnvironmentFromTag(tag byte) (Environment, bool) {
	switch tag {
	case 0x01:
		return Staging, true
	case 0x02:
		return Production, true
	}
	return "", false
}

// Aci is the account identifier a credential is issued for.
type Aci [16]byte

const aciPrefix = "ACI:"

// ParseAci parses a UUID string, optionally prefixed with "ACI:".
func ParseAci(s string) (Aci, error) {
	s = strings.TrimSpace(s)
	if len(s) >= len(aciPrefix) && strings.EqualFold(s[:len(aciPrefix)], aciPrefix) {
		s = s[len(aciPrefix):]
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Aci{}, errors.Wrapf(ErrInvalidAci, "%q: %v", s, err)
	}
	return Aci(u), nil
}

// String returns the canonical lower-case UUID form.
func (a Aci) String() string { return uuid.UUID(a).String() }

// Slice returns the identifier as a []byte.
func (a Aci) Slice() []byte { return a[:] }

// MarshalText implements encoding.TextMarshaler.
func (a Aci) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Aci) UnmarshalText(b []byte) error {
	parsed, err := ParseAci(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
