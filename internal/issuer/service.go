package issuer

import (
	"crypto/subtle"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

// Service registers profiles and issues credentials against them.
type Service struct {
	secret   *zkcred.ServerSecretParams
	profiles domain.ProfileStore
	clock    clock.Clock
	metrics  *Metrics
	log      logrus.FieldLogger
}

// New constructs an issuer Service.
func New(
	secret *zkcred.ServerSecretParams,
	profiles domain.ProfileStore,
	clk clock.Clock,
	metrics *Metrics,
	log logrus.FieldLogger,
) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{secret: secret, profiles: profiles, clock: clk, metrics: metrics, log: log}
}

// PublicParams returns the parameters clients verify against.
func (s *Service) PublicParams() *zkcred.ServerPublicParams { return s.secret.Public() }

// RegisterProfile adds version to the profile for aci and sets its access key.
func (s *Service) RegisterProfile(
	aci domain.Aci,
	version domain.ProfileKeyVersion,
	accessKey domain.AccessKey,
) error {
	if !version.Valid() {
		return errors.Wrap(ErrBadRequest, "malformed profile key version")
	}
	p, _, err := s.profiles.LoadProfile(aci)
	if err != nil {
		return errors.Wrap(err, "load profile")
	}
	p.Aci = aci
	if !p.HasVersion(version) {
		p.Versions = append(p.Versions, version)
	}
	p.AccessKey = accessKey
	p.UpdatedAt = s.clock.Now().Unix()
	if err := s.profiles.SaveProfile(p); err != nil {
		return errors.Wrap(err, "save profile")
	}
	if s.metrics != nil {
		s.metrics.ProfilesRegistered.Inc()
	}
	return nil
}

// IssueCredential answers request for aci if accessKey matches the
// registered one and version is known.
//
// An unknown ACI is reported as ErrUnauthorized so callers cannot probe
// for registered accounts.
func (s *Service) IssueCredential(
	aci domain.Aci,
	version domain.ProfileKeyVersion,
	accessKey domain.AccessKey,
	request *zkcred.CredentialRequest,
) (*zkcred.CredentialResponse, error) {
	start := s.clock.Now()
	resp, reason, err := s.issue(aci, version, accessKey, request)
	if s.metrics != nil {
		s.metrics.ObserveIssue(start)
		if err != nil {
			s.metrics.Reject(reason)
		} else {
			s.metrics.CredentialsIssued.Inc()
		}
	}
	if err != nil {
		s.log.WithField("status", reason).Debug("credential request refused")
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"params_id":  request.ParamsID(),
		"expiration": resp.Expiration().Format(time.RFC3339),
	}).Debug("credential issued")
	return resp, nil
}

func (s *Service) issue(
	aci domain.Aci,
	version domain.ProfileKeyVersion,
	accessKey domain.AccessKey,
	request *zkcred.CredentialRequest,
) (*zkcred.CredentialResponse, string, error) {
	p, found, err := s.profiles.LoadProfile(aci)
	if err != nil {
		return nil, "store", errors.Wrap(err, "load profile")
	}
	keyOK := subtle.ConstantTimeCompare(p.AccessKey[:], accessKey[:]) == 1
	if !found || !keyOK {
		return nil, "unauthorized", ErrUnauthorized
	}
	if !p.HasVersion(version) {
		return nil, "unknown_version", errors.Wrapf(ErrProfileNotFound, "version %.8s", version)
	}
	if request.ParamsID() != s.secret.Public().ID() {
		return nil, "params", errors.Wrapf(ErrBadRequest, "request built for params %s", request.ParamsID())
	}

	resp, err := zkcred.IssueExpiringProfileKeyCredential(s.secret, request, aci, zkcred.CredentialExpiration(s.clock.Now()))
	if err != nil {
		return nil, "issue", errors.Wrap(err, "issue credential")
	}
	return resp, "", nil
}

var _ domain.IssuerService = (*Service)(nil)
