package interfaces

import (
	"context"

	domaintypes "github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// CredentialService obtains expiring profile key credentials for the client.
type CredentialService interface {
	FetchProfileKeyCredential(
		ctx context.Context,
		env domaintypes.Environment,
		aci domaintypes.Aci,
		profileKey domaintypes.ProfileKey,
	) (*zkcred.ExpiringProfileKeyCredential, error)
	RegisterProfile(
		ctx context.Context,
		env domaintypes.Environment,
		aci domaintypes.Aci,
		profileKey domaintypes.ProfileKey,
	) error
	AccessKey(profileKey domaintypes.ProfileKey) domaintypes.AccessKey
}

// IssuerService answers credential requests on the issuer side.
type IssuerService interface {
	RegisterProfile(
		aci domaintypes.Aci,
		version domaintypes.ProfileKeyVersion,
		accessKey domaintypes.AccessKey,
	) error
	IssueCredential(
		aci domaintypes.Aci,
		version domaintypes.ProfileKeyVersion,
		accessKey domaintypes.AccessKey,
		request *zkcred.CredentialRequest,
	) (*zkcred.CredentialResponse, error)
	PublicParams() *zkcred.ServerPublicParams
}
