package zkcred

import (
	"crypto/subtle"
	"time"

	"github.com/cloudflare/circl/oprf"
	"github.com/pkg/errors"
)

// ReceiveExpiringProfileKeyCredential verifies resp against the context
// that produced the request and returns the credential.
//
// It checks the parameter identifiers, the issuer's proof and the validity
// window at now. All checks run before any of them is reported. The
// context is left intact; the caller destroys it.
func ReceiveExpiringProfileKeyCredential(
	params *ServerPublicParams,
	ctx *RequestContext,
	resp *CredentialResponse,
	now time.Time,
) (*ExpiringProfileKeyCredential, error) {
	if ctx == nil || ctx.destroyed {
		return nil, ErrContextDestroyed
	}
	if params == nil || resp == nil {
		return nil, errors.Wrap(ErrParameterMismatch, "missing parameters or response")
	}

	idsMatch := subtle.ConstantTimeCompare(ctx.paramsID[:], params.id[:]) &
		subtle.ConstantTimeCompare(resp.paramsID[:], params.id[:])

	aligned := dayAligned(resp.expiration)

	client := oprf.NewPartialObliviousClient(suite, params.key)
	outputs, finErr := client.Finalize(ctx.finalize, resp.evaluation(), credentialInfo(ctx.aci, resp.expiration))

	inWindow := withinWindow(resp.expiration, now)

	switch {
	case idsMatch != 1:
		return nil, errors.Wrapf(ErrParameterMismatch, "response built for %s, expected %s", resp.paramsID, params.id)
	case finErr != nil:
		return nil, errors.Wrap(ErrInvalidProof, finErr.Error())
	case !aligned:
		return nil, errors.Wrap(ErrInvalidProof, "expiration is not a whole day")
	case !inWindow:
		return nil, errors.Wrapf(ErrExpiredCredential, "expires %s, now %s",
			resp.Expiration().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}

	return &ExpiringProfileKeyCredential{
		aci:        ctx.aci,
		profileKey: ctx.profileKey,
		expiration: resp.expiration,
		output:     outputs[0],
	}, nil
}
