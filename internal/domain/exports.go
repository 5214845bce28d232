package domain

import (
	interfaces "github.com/ctstone/libsignal/internal/domain/interfaces"
	types "github.com/ctstone/libsignal/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Environment       = types.Environment
	Aci               = types.Aci
	ProfileKey        = types.ProfileKey
	AccessKey         = types.AccessKey
	ProfileKeyVersion = types.ProfileKeyVersion
	Profile           = types.Profile
	SetProfileRequest = types.SetProfileRequest
	CredentialReply   = types.CredentialReply
	ParamsReply       = types.ParamsReply
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CredentialTransport = interfaces.CredentialTransport
	Connector           = interfaces.Connector
	ParameterStore      = interfaces.ParameterStore
	CredentialService   = interfaces.CredentialService
	IssuerService       = interfaces.IssuerService
	ProfileStore        = interfaces.ProfileStore
	IssuerKeyStore      = interfaces.IssuerKeyStore
)
