package interfaces

import (
	domaintypes "github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// ProfileStore persists the profiles an issuer has registered.
type ProfileStore interface {
	SaveProfile(profile domaintypes.Profile) error
	LoadProfile(aci domaintypes.Aci) (domaintypes.Profile, bool, error)
}

// IssuerKeyStore persists an issuer's secret parameters under a passphrase.
type IssuerKeyStore interface {
	SaveIssuerKey(passphrase string, secret *zkcred.ServerSecretParams) error
	LoadIssuerKey(
		passphrase string,
		env domaintypes.Environment,
	) (*zkcred.ServerSecretParams, error)
}
