// Package main runs the development credential issuer used by profilecred
// during local runs and tests.
//
// Commands
//
//	issuer keygen --env staging --out DIR
//	    Generate issuer secret parameters, seal them under a passphrase in
//	    DIR and print the public parameters for the client config.
//
//	issuer serve [--config FILE] [--addr HOST:PORT]
//	    Load the sealed key and serve the HTTP API described in
//	    internal/issuer until SIGINT or SIGTERM.
//
// Behaviour
//
//   - The passphrase comes from the config (issuer.passphrase, or
//     ISSUER_ISSUER_PASSPHRASE) or is prompted for on a terminal.
//   - Profiles are kept in memory unless issuer.profile_store is "file".
//   - A lightweight access log records method, route, remote, status, bytes
//     and duration for each request.
//
// The issuer is meant for local use. It never sees profile keys, only their
// versions and derived access keys.
package main
