// Package store provides file-based persistence for the development issuer.
//
// It contains concrete implementations of the domain storage interfaces.
// Files are replaced atomically and every store serialises access with its
// own mutex.
//
// The package includes stores for:
//   - Issuer secret parameters, sealed under a passphrase with scrypt and
//     ChaCha20-Poly1305 (IssuerKeyFileStore)
//   - Registered profiles as plain JSON (ProfileFileStore)
package store
