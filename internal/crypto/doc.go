// Package crypto holds the small symmetric derivations built on a profile key.
//
// Contents
//
//   - Access key derivation (DeriveAccessKey): AES-256-GCM keystream over a
//     zero block, the value presented as Unidentified-Access-Key
//   - Profile key versions (ProfileKeyVersion): HKDF-SHA256 of the key salted
//     with the ACI, safe to send to the server
//   - Base64 helpers (B64, FromB64)
//
// # Notes
//
// The blinded credential scheme itself lives in internal/protocol/zkcred.
// Nothing here retains the profile key; callers own its lifetime and should
// Wipe it when done.
package crypto
