package zkcred

import (
	"crypto/rand"

	"github.com/cloudflare/circl/group"
	"github.com/cloudflare/circl/oprf"
	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/util/memzero"
)

var inputLabel = []byte("libsignal-go/ProfileKeyCredential/input/v1")

// CredentialRequest is the blinded, transmittable half of a RequestContext.
type CredentialRequest struct {
	paramsID ParamsID
	blinded  group.Element
}

const requestLen = 1 + paramsIDLen + elementLen

// ParamsID returns the parameters the request was built against.
func (r *CredentialRequest) ParamsID() ParamsID { return r.paramsID }

// Serialize encodes [version][params ID][blinded element].
func (r *CredentialRequest) Serialize() []byte {
	out := make([]byte, 0, requestLen)
	out = append(out, formatVersion)
	out = append(out, r.paramsID[:]...)
	e, err := r.blinded.MarshalBinaryCompress()
	if err != nil {
		// Only reachable for an element that failed to decode, which
		// DeserializeCredentialRequest never returns.
		panic(err)
	}
	return append(out, e...)
}

// DeserializeCredentialRequest is the inverse of Serialize.
func DeserializeCredentialRequest(b []byte) (*CredentialRequest, error) {
	if len(b) != requestLen {
		return nil, errors.Wrapf(ErrDecode, "request: want %d bytes, got %d", requestLen, len(b))
	}
	if b[0] != formatVersion {
		return nil, errors.Wrapf(ErrDecode, "request: unsupported version %d", b[0])
	}
	r := &CredentialRequest{blinded: suite.Group().NewElement()}
	copy(r.paramsID[:], b[1:1+paramsIDLen])
	if err := r.blinded.UnmarshalBinary(b[1+paramsIDLen:]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "request: blinded element: %v", err)
	}
	if r.blinded.IsIdentity() {
		return nil, errors.Wrap(ErrDecode, "request: identity element")
	}
	return r, nil
}

// RequestContext is the requester's private state for one issuance attempt.
//
// It holds the blind and a copy of the profile key. It must not be shared
// between goroutines or reused after Destroy.
type RequestContext struct {
	paramsID   ParamsID
	env        types.Environment
	aci        types.Aci
	profileKey types.ProfileKey

	input    []byte
	blinds   []oprf.Blind
	finalize *oprf.FinalizeData
	request  *CredentialRequest

	destroyed bool
}

// CreateRequestContext blinds (aci, pk) against params.
//
// env is the environment the caller believes it is talking to; params built
// for another environment are rejected with ErrParameterMismatch. The blind
// is drawn internally from a secure source on every call.
func CreateRequestContext(
	params *ServerPublicParams,
	env types.Environment,
	aci types.Aci,
	pk types.ProfileKey,
) (*RequestContext, error) {
	if params == nil {
		return nil, errors.Wrap(ErrParameterMismatch, "no parameters")
	}
	if params.env != env {
		return nil, errors.Wrapf(ErrParameterMismatch, "parameters are for %s, caller expects %s", params.env, env)
	}

	input := credentialInput(aci, pk)
	blinds := []oprf.Blind{suite.Group().RandomNonZeroScalar(rand.Reader)}

	client := oprf.NewPartialObliviousClient(suite, params.key)
	fin, evalReq, err := client.DeterministicBlind([][]byte{input}, blinds)
	if err != nil {
		memzero.Zero(input)
		memzero.Scalars(blinds...)
		return nil, errors.Wrap(err, "blind credential request")
	}

	return &RequestContext{
		paramsID:   params.id,
		env:        env,
		aci:        aci,
		profileKey: pk,
		input:      input,
		blinds:     blinds,
		finalize:   fin,
		request:    &CredentialRequest{paramsID: params.id, blinded: evalReq.Elements[0]},
	}, nil
}

// Request returns the blinded request to send to the issuer.
func (c *RequestContext) Request() *CredentialRequest { return c.request }

// Aci returns the identity the context was built for.
func (c *RequestContext) Aci() types.Aci { return c.aci }

// Environment returns the environment the context was built for.
func (c *RequestContext) Environment() types.Environment { return c.env }

// Destroyed reports whether Destroy has been called.
func (c *RequestContext) Destroyed() bool { return c.destroyed }

// Destroy zeroes the blind, the hashed input and the profile key copy.
// It is safe to call more than once.
func (c *RequestContext) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	memzero.Scalars(c.blinds...)
	memzero.Zero(c.input)
	c.profileKey.Wipe()
	c.finalize = nil
	c.destroyed = true
}

func credentialInput(aci types.Aci, pk types.ProfileKey) []byte {
	in := make([]byte, 0, len(inputLabel)+len(aci)+len(pk))
	in = append(in, inputLabel...)
	in = append(in, aci[:]...)
	return append(in, pk[:]...)
}
