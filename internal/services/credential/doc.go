// Package credential obtains expiring profile key credentials from a chat
// service.
//
// It ties together the parameter store, the blinded request, the transport
// and the response validator. Nothing it handles is persisted.
package credential
