// Package app wires application dependencies for the two binaries.
//
// It loads configuration (defaults, environment variables, then an optional
// TOML file) and builds the concrete stores, transports and services:
// Wire for the profilecred client and Issuer for the development issuer.
package app
