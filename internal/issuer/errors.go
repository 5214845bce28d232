package issuer

import "github.com/pkg/errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrProfileNotFound = errors.New("profile not found")
	ErrBadRequest      = errors.New("bad request")
)
