// Package issuer is a development stand-in for the chat service's profile
// credential endpoints.
//
// It registers profiles (profile key version plus access key) and answers
// blinded credential requests with the issuer's secret parameters. State
// lives in a ProfileStore, either in memory or on disk.
//
// HTTP API
//
//	GET /v1/keepalive
//	    204 while the server is up.
//
//	PUT /v1/profile/{aci}
//	    Register a profile key version and access key for {aci}.
//
//	GET /v1/profile/{aci}/{version}/{request}?credentialType=expiringProfileKey
//	    Issue a credential for the hex-encoded blinded {request}. The
//	    Unidentified-Access-Key header must match the registered access key.
//
//	GET /v1/params
//	    The public parameters this issuer signs with.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Errors are JSON {"error": "..."} with 400, 401, 404 or 500.
package issuer
