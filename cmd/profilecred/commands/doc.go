// Package commands defines the profilecred CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - fetch        Obtain and verify an expiring profile key credential
//   - access-key   Print the unidentified access key of a profile key
//   - params       Decode and describe an environment's server parameters
//   - register     Register a profile with a development issuer
//
// Environments are named explicitly on every command: staging, production
// or prod.
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (parameter store, chat connector, credential service) before any
// subcommand runs. Each subcommand runs under the configured timeout.
package commands
