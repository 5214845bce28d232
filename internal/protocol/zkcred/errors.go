package zkcred

import "github.com/pkg/errors"

var (
	ErrDecode            = errors.New("zkcred: malformed serialised value")
	ErrParameterMismatch = errors.New("zkcred: server parameters do not match")
	ErrInvalidProof      = errors.New("zkcred: credential verification failed")
	ErrExpiredCredential = errors.New("zkcred: credential outside its validity window")
	ErrContextDestroyed  = errors.New("zkcred: request context already destroyed")
)
