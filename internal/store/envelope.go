package store

import (
	"crypto/cipher"
	"crypto/rand"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const envelopeFormatVersion = 1

// ErrWrongPassphrase is returned when an envelope does not open, either
// because the passphrase is wrong or the file was modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")

// envelope is the on-disk form of a passphrase-sealed secret.
type envelope struct {
	V      int    `json:"v"`
	Label  string `json:"label"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

type scryptParams struct{ N, R, P int }

func defaultScrypt() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

// seal encrypts raw under a key derived from passphrase. label is bound as
// associated data so an envelope cannot be replayed under another name.
func seal(passphrase, label string, raw []byte, kdf scryptParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	aead, err := envelopeAEAD(passphrase, salt[:], kdf)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // key is unique per salt
	ct := aead.Seal(nil, nonce[:], raw, associatedData(label, salt[:]))

	return json.Marshal(envelope{
		V:      envelopeFormatVersion,
		Label:  label,
		Salt:   salt[:],
		N:      kdf.N,
		R:      kdf.R,
		P:      kdf.P,
		Cipher: ct,
	})
}

// open reverses seal and checks the envelope carries label.
func open(passphrase, label string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, errors.Wrap(err, "decode key envelope")
	}
	if env.V > envelopeFormatVersion {
		return nil, errors.Errorf("unsupported key envelope version %d", env.V)
	}
	if env.Label != label {
		return nil, errors.Errorf("key envelope is for %q, want %q", env.Label, label)
	}
	aead, err := envelopeAEAD(passphrase, env.Salt, scryptParams{N: env.N, R: env.R, P: env.P})
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, associatedData(label, env.Salt))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func envelopeAEAD(passphrase string, salt []byte, kdf scryptParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, errors.Wrap(err, "derive envelope key")
	}
	return chacha20poly1305.New(key)
}

func associatedData(label string, salt []byte) []byte {
	return append([]byte(label+"\x00"), salt...)
}
