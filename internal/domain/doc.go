// Package domain defines the data models and contracts shared by the
// credential client and the development issuer. It contains plain types
// and interfaces only.
package domain
