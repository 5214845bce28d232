// Package zkcred implements the expiring profile key credential exchange on
// top of a partially-oblivious PRF (RFC 9497, ristretto255-SHA512).
//
// # Overview
//
// The requester hashes (ACI, profile key) to a group element and blinds it
// with a fresh scalar. The issuer evaluates the blinded element under its
// secret key tweaked by public info (ACI and expiration day) and attaches a
// DLEQ proof that it used the key published in ServerPublicParams. The
// requester verifies the proof, unblinds, and keeps the PRF output as the
// credential.
//
// # Flows
//
// Requester:
//  1. CreateRequestContext: blind, keep the blind locally.
//  2. Send RequestContext.Request() to the issuer.
//  3. ReceiveExpiringProfileKeyCredential: check parameters, verify the proof,
//     check the validity window, unblind.
//  4. Destroy the context.
//
// Issuer:
//  1. IssueExpiringProfileKeyCredential with an expiration from
//     CredentialExpiration.
//
// # Errors
//
// ErrDecode for malformed serialised values, ErrParameterMismatch when the
// request, response and parameters disagree on the issuer key or environment,
// ErrInvalidProof when verification fails, ErrExpiredCredential when the
// current time is outside the validity window, ErrContextDestroyed after
// Destroy.
//
// # Security notes
//
// The blind never leaves the RequestContext and is generated internally, so
// a caller cannot reuse randomness across requests. The issuer sees neither
// the profile key nor the unblinded credential.
package zkcred
