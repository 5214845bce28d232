package types

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/util/memzero"
)

const (
	ProfileKeyLen        = 32
	AccessKeyLen         = 16
	ProfileKeyVersionLen = 64
)

// ErrInvalidProfileKey is returned when a profile key is not 32 hex-encoded bytes.
var ErrInvalidProfileKey = errors.New("invalid profile key")

// ProfileKey is the symmetric secret shared with contacts to decrypt a profile.
type ProfileKey [ProfileKeyLen]byte

// ParseProfileKeyHex decodes a 64-character hex string.
func ParseProfileKeyHex(s string) (ProfileKey, error) {
	var pk ProfileKey
	s = strings.TrimSpace(s)
	if len(s) != hex.EncodedLen(ProfileKeyLen) {
		return pk, errors.Wrapf(ErrInvalidProfileKey, "want %d hex chars, got %d", hex.EncodedLen(ProfileKeyLen), len(s))
	}
	if _, err := hex.Decode(pk[:], []byte(s)); err != nil {
		return ProfileKey{}, errors.Wrap(ErrInvalidProfileKey, err.Error())
	}
	return pk, nil
}

// Slice returns the key as a []byte.
func (k *ProfileKey) Slice() []byte { return k[:] }

// Wipe zeroes the key in place.
func (k *ProfileKey) Wipe() { memzero.Zero(k[:]) }

// String never prints key material.
func (k ProfileKey) String() string { return "ProfileKey(redacted)" }

// AccessKey authorises unidentified access to an account without revealing
// the profile key it was derived from.
type AccessKey [AccessKeyLen]byte

// Base64 returns the header encoding of the access key.
func (k AccessKey) Base64() string { return base64.StdEncoding.EncodeToString(k[:]) }

// ParseAccessKeyBase64 decodes the header encoding of an access key.
func ParseAccessKeyBase64(s string) (AccessKey, error) {
	var k AccessKey
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return k, errors.Wrap(err, "decode access key")
	}
	if len(b) != AccessKeyLen {
		return k, errors.Errorf("access key: want %d bytes, got %d", AccessKeyLen, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Slice returns the key as a []byte.
func (k AccessKey) Slice() []byte { return k[:] }

// MarshalText implements encoding.TextMarshaler.
func (k AccessKey) MarshalText() ([]byte, error) { return []byte(k.Base64()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AccessKey) UnmarshalText(b []byte) error {
	parsed, err := ParseAccessKeyBase64(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ProfileKeyVersion identifies a profile key to the server without revealing it.
type ProfileKeyVersion string

// String returns the hex form of the version.
func (v ProfileKeyVersion) String() string { return string(v) }

// Valid reports whether v is 64 lowercase hex characters.
func (v ProfileKeyVersion) Valid() bool {
	if len(v) != ProfileKeyVersionLen {
		return false
	}
	for _, c := range v {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
