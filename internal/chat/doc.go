// Package chat is the client side of the chat service's profile endpoints.
//
// Connector resolves an environment to its base URL and probes the service
// before handing out an HTTPClient. HTTPClient fetches expiring profile key
// credentials and registers profiles.
//
// Every failure is a *TransportError carrying the method, URL and status
// code, and matches ErrTransport under errors.Is. Server errors, rate
// limiting and network failures are retried with exponential backoff;
// other client errors are returned immediately.
package chat
