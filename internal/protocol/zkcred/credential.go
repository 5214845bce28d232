package zkcred

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/util/memzero"
)

// ExpiringProfileKeyCredential proves, until Expiration, that the holder
// knows the profile key registered for Aci.
type ExpiringProfileKeyCredential struct {
	aci        types.Aci
	profileKey types.ProfileKey
	expiration uint64
	output     []byte
}

const credentialLen = 1 + 16 + types.ProfileKeyLen + 8 + outputLen

// Aci returns the identity the credential was issued for.
func (c *ExpiringProfileKeyCredential) Aci() types.Aci { return c.aci }

// ProfileKey returns the profile key the credential attests to.
func (c *ExpiringProfileKeyCredential) ProfileKey() types.ProfileKey { return c.profileKey }

// Expiration is the first instant the credential is no longer valid.
func (c *ExpiringProfileKeyCredential) Expiration() time.Time {
	return time.Unix(int64(c.expiration), 0).UTC()
}

// ValidFrom is the earliest instant the credential is accepted.
func (c *ExpiringProfileKeyCredential) ValidFrom() time.Time {
	return c.Expiration().Add(-CredentialLifetime)
}

// Contains reports whether t falls inside [ValidFrom, Expiration).
func (c *ExpiringProfileKeyCredential) Contains(t time.Time) bool {
	return withinWindow(c.expiration, t)
}

// Serialize encodes the credential for the caller's own storage. The
// output contains the profile key and must be protected accordingly.
func (c *ExpiringProfileKeyCredential) Serialize() []byte {
	out := make([]byte, 0, credentialLen)
	out = append(out, formatVersion)
	out = append(out, c.aci[:]...)
	out = append(out, c.profileKey[:]...)
	out = binary.BigEndian.AppendUint64(out, c.expiration)
	return append(out, c.output...)
}

// DeserializeExpiringProfileKeyCredential is the inverse of Serialize.
func DeserializeExpiringProfileKeyCredential(b []byte) (*ExpiringProfileKeyCredential, error) {
	if len(b) != credentialLen {
		return nil, errors.Wrapf(ErrDecode, "credential: want %d bytes, got %d", credentialLen, len(b))
	}
	if b[0] != formatVersion {
		return nil, errors.Wrapf(ErrDecode, "credential: unsupported version %d", b[0])
	}
	c := new(ExpiringProfileKeyCredential)
	off := 1
	off += copy(c.aci[:], b[off:])
	off += copy(c.profileKey[:], b[off:])
	c.expiration = binary.BigEndian.Uint64(b[off : off+8])
	off += 8
	c.output = append([]byte(nil), b[off:]...)
	if !dayAligned(c.expiration) {
		return nil, errors.Wrap(ErrDecode, "credential: expiration is not a whole day")
	}
	return c, nil
}

// Wipe zeroes the profile key and POPRF output.
func (c *ExpiringProfileKeyCredential) Wipe() {
	c.profileKey.Wipe()
	memzero.Zero(c.output)
}

// withinWindow reports whether exp-lifetime <= t < exp.
func withinWindow(expiration uint64, t time.Time) bool {
	now := t.Unix()
	if expiration > uint64(maxExpiration) || now < 0 {
		return false
	}
	exp := int64(expiration)
	return exp-int64(CredentialLifetime/time.Second) <= now && now < exp
}

// maxExpiration keeps time arithmetic on expirations from overflowing.
const maxExpiration = int64(1) << 62
