// Package memzero wipes secret material that must not outlive its use.
package memzero

import (
	"crypto/subtle"

	"github.com/cloudflare/circl/group"
)

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}

// Scalars resets every non-nil group scalar to zero.
func Scalars(ss ...group.Scalar) {
	for _, s := range ss {
		if s != nil {
			s.SetUint64(0)
		}
	}
}
