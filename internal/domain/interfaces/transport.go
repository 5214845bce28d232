package interfaces

import (
	"context"

	domaintypes "github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// CredentialTransport is an established session with a chat service.
type CredentialTransport interface {
	GetProfileKeyCredential(
		ctx context.Context,
		aci domaintypes.Aci,
		profileKey domaintypes.ProfileKey,
		request *zkcred.CredentialRequest,
		accessKey domaintypes.AccessKey,
	) (*zkcred.CredentialResponse, error)

	SetProfile(
		ctx context.Context,
		aci domaintypes.Aci,
		version domaintypes.ProfileKeyVersion,
		accessKey domaintypes.AccessKey,
	) error
}

// Connector opens a CredentialTransport to the chat service of one environment.
type Connector interface {
	Connect(ctx context.Context, env domaintypes.Environment) (CredentialTransport, error)
}
