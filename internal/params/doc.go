// Package params maps each environment to its chat endpoint and issuer
// public parameters, and decodes the parameters once per environment.
package params
