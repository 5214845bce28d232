package zkcred

import (
	"encoding/binary"
	"time"

	"github.com/cloudflare/circl/group"
	"github.com/cloudflare/circl/oprf"
	"github.com/cloudflare/circl/zk/dleq"
	"github.com/pkg/errors"
)

// CredentialResponse is the issuer's answer to one CredentialRequest.
type CredentialResponse struct {
	paramsID   ParamsID
	expiration uint64
	evaluated  group.Element
	proof      *dleq.Proof
}

const responseLen = 1 + paramsIDLen + 8 + elementLen + proofLen

// ParamsID returns the parameters the issuer answered with.
func (r *CredentialResponse) ParamsID() ParamsID { return r.paramsID }

// Expiration returns the expiration the issuer claims. It is only
// trustworthy after ReceiveExpiringProfileKeyCredential succeeds.
func (r *CredentialResponse) Expiration() time.Time {
	return time.Unix(int64(r.expiration), 0).UTC()
}

// Serialize encodes [version][params ID][expiration][evaluated][proof].
func (r *CredentialResponse) Serialize() ([]byte, error) {
	out := make([]byte, 0, responseLen)
	out = append(out, formatVersion)
	out = append(out, r.paramsID[:]...)
	out = binary.BigEndian.AppendUint64(out, r.expiration)
	e, err := r.evaluated.MarshalBinaryCompress()
	if err != nil {
		return nil, errors.Wrap(err, "encode evaluated element")
	}
	out = append(out, e...)
	p, err := r.proof.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "encode proof")
	}
	return append(out, p...), nil
}

// DeserializeCredentialResponse is the inverse of Serialize.
func DeserializeCredentialResponse(b []byte) (*CredentialResponse, error) {
	if len(b) != responseLen {
		return nil, errors.Wrapf(ErrDecode, "response: want %d bytes, got %d", responseLen, len(b))
	}
	if b[0] != formatVersion {
		return nil, errors.Wrapf(ErrDecode, "response: unsupported version %d", b[0])
	}
	r := &CredentialResponse{
		evaluated: suite.Group().NewElement(),
		proof:     new(dleq.Proof),
	}
	off := 1
	copy(r.paramsID[:], b[off:off+paramsIDLen])
	off += paramsIDLen
	r.expiration = binary.BigEndian.Uint64(b[off : off+8])
	off += 8
	if err := r.evaluated.UnmarshalBinary(b[off : off+elementLen]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "response: evaluated element: %v", err)
	}
	off += elementLen
	if err := r.proof.UnmarshalBinary(suite.Group(), b[off:]); err != nil {
		return nil, errors.Wrapf(ErrDecode, "response: proof: %v", err)
	}
	return r, nil
}

func (r *CredentialResponse) evaluation() *oprf.Evaluation {
	return &oprf.Evaluation{Elements: []oprf.Evaluated{r.evaluated}, Proof: r.proof}
}
