package credential

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// Service runs one credential issuance per call.
//
// For each fetch it:
//   - Loads the issuer parameters for the environment.
//   - Blinds a request for (ACI, profile key) and derives the access key.
//   - Sends the request over a fresh chat connection.
//   - Verifies the response and returns the credential.
type Service struct {
	params    domain.ParameterStore
	connector domain.Connector
	clock     clock.Clock
	log       logrus.FieldLogger
}

// New constructs a credential Service.
func New(
	params domain.ParameterStore,
	connector domain.Connector,
	clk clock.Clock,
	log logrus.FieldLogger,
) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{params: params, connector: connector, clock: clk, log: log}
}

// FetchProfileKeyCredential obtains and verifies a credential for aci.
//
// Steps:
//  1. Load the public parameters for env.
//  2. Create the request context; it is destroyed when this returns.
//  3. Connect and send the request with the derived access key.
//  4. Verify the response against the context at the current time.
func (s *Service) FetchProfileKeyCredential(
	ctx context.Context,
	env domain.Environment,
	aci domain.Aci,
	profileKey domain.ProfileKey,
) (*zkcred.ExpiringProfileKeyCredential, error) {
	params, err := s.params.Load(env)
	if err != nil {
		return nil, errors.Wrap(err, "load server parameters")
	}
	log := s.log.WithFields(logrus.Fields{"env": env, "params_id": params.ID()})

	reqCtx, err := zkcred.CreateRequestContext(params, env, aci, profileKey)
	if err != nil {
		return nil, errors.Wrap(err, "create request context")
	}
	defer reqCtx.Destroy()
	accessKey := crypto.DeriveAccessKey(profileKey)

	transport, err := s.connector.Connect(ctx, env)
	if err != nil {
		return nil, errors.Wrap(err, "connect to chat service")
	}
	resp, err := transport.GetProfileKeyCredential(ctx, aci, profileKey, reqCtx.Request(), accessKey)
	if err != nil {
		return nil, errors.Wrap(err, "request credential")
	}

	cred, err := zkcred.ReceiveExpiringProfileKeyCredential(params, reqCtx, resp, s.clock.Now())
	if err != nil {
		return nil, errors.Wrap(err, "verify credential")
	}

	log.WithField("expiration", cred.Expiration().Format(time.RFC3339)).Info("success!")
	return cred, nil
}

// RegisterProfile publishes the version and access key of profileKey for
// aci so an issuer will answer credential requests for it.
func (s *Service) RegisterProfile(
	ctx context.Context,
	env domain.Environment,
	aci domain.Aci,
	profileKey domain.ProfileKey,
) error {
	transport, err := s.connector.Connect(ctx, env)
	if err != nil {
		return errors.Wrap(err, "connect to chat service")
	}
	version := crypto.ProfileKeyVersion(profileKey, aci)
	if err := transport.SetProfile(ctx, aci, version, crypto.DeriveAccessKey(profileKey)); err != nil {
		return errors.Wrap(err, "set profile")
	}
	s.log.WithField("env", env).Info("profile registered")
	return nil
}

// AccessKey derives the unidentified access key for profileKey.
func (s *Service) AccessKey(profileKey domain.ProfileKey) domain.AccessKey {
	return crypto.DeriveAccessKey(profileKey)
}

var _ domain.CredentialService = (*Service)(nil)
