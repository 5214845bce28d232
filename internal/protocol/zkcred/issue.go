package zkcred

import (
	"encoding/binary"
	"time"

	"github.com/cloudflare/circl/oprf"
	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/domain/types"
)

var infoLabel = []byte("libsignal-go/ProfileKeyCredential/expiring/v1")

// credentialInfo is the public POPRF input binding an evaluation to one
// identity and one expiration.
func credentialInfo(aci types.Aci, expiration uint64) []byte {
	info := make([]byte, 0, len(infoLabel)+len(aci)+8)
	info = append(info, infoLabel...)
	info = append(info, aci[:]...)
	return binary.BigEndian.AppendUint64(info, expiration)
}

// CredentialExpiration returns the expiration an issuer should stamp on a
// credential issued at now: now plus the lifetime, truncated to a day.
func CredentialExpiration(now time.Time) time.Time {
	secs := now.Add(CredentialLifetime).Unix()
	return time.Unix(secs-secs%secondsPerDay, 0).UTC()
}

func dayAligned(secs uint64) bool { return secs%secondsPerDay == 0 }

// IssueExpiringProfileKeyCredential answers req for aci, valid until
// expiration. The issuer is responsible for checking that the requester
// is entitled to a credential for aci.
func IssueExpiringProfileKeyCredential(
	secret *ServerSecretParams,
	req *CredentialRequest,
	aci types.Aci,
	expiration time.Time,
) (*CredentialResponse, error) {
	if secret == nil || req == nil {
		return nil, errors.Wrap(ErrParameterMismatch, "missing parameters or request")
	}
	if req.paramsID != secret.public.id {
		return nil, errors.Wrapf(ErrParameterMismatch, "request built for %s, issuer holds %s", req.paramsID, secret.public.id)
	}
	secs := expiration.Unix()
	if secs <= 0 || !dayAligned(uint64(secs)) {
		return nil, errors.Errorf("expiration %s is not a whole day", expiration.UTC().Format(time.RFC3339))
	}

	server := oprf.NewPartialObliviousServer(suite, secret.key)
	eval, err := server.Evaluate(
		&oprf.EvaluationRequest{Elements: []oprf.Blinded{req.blinded}},
		credentialInfo(aci, uint64(secs)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate credential request")
	}
	return &CredentialResponse{
		paramsID:   secret.public.id,
		expiration: uint64(secs),
		evaluated:  eval.Elements[0],
		proof:      eval.Proof,
	}, nil
}
