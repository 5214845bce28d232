package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/util/memzero"
)

const profileKeyVersionInfo = "libsignal-go/ProfileKeyVersion/v1"

// DeriveAccessKey returns the unidentified-access key for pk.
//
// The key is the first 16 bytes of AES-256-GCM over 16 zero bytes, keyed by
// the profile key with an all-zero nonce, so it depends on pk alone.
func DeriveAccessKey(pk types.ProfileKey) types.AccessKey {
	var out types.AccessKey
	block, err := aes.NewCipher(pk[:])
	if err != nil {
		// A 32-byte key is always a valid AES-256 key.
		panic(err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		panic(err)
	}
	nonce := make([]byte, aead.NonceSize())
	sealed := aead.Seal(nil, nonce, make([]byte, types.AccessKeyLen), nil)
	copy(out[:], sealed[:types.AccessKeyLen])
	memzero.Zero(sealed)
	return out
}

// ProfileKeyVersion derives the public version string of pk for aci.
func ProfileKeyVersion(pk types.ProfileKey, aci types.Aci) types.ProfileKeyVersion {
	r := hkdf.New(sha256.New, pk[:], aci[:], []byte(profileKeyVersionInfo))
	var v [32]byte
	_, _ = io.ReadFull(r, v[:])
	return types.ProfileKeyVersion(hex.EncodeToString(v[:]))
}
