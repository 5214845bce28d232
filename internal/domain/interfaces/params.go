package interfaces

import (
	domaintypes "github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// ParameterStore resolves per-environment issuer parameters and endpoints.
type ParameterStore interface {
	Load(env domaintypes.Environment) (*zkcred.ServerPublicParams, error)
	ChatURL(env domaintypes.Environment) (string, error)
}
