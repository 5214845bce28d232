package app

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/issuer"
	"github.com/ctstone/libsignal/internal/store"
)

// Issuer bundles the development issuer's service and HTTP handler.
type Issuer struct {
	Service  *issuer.Service
	Handler  http.Handler
	Registry *prometheus.Registry
	Profiles domain.ProfileStore
}

// NewIssuer loads the issuer key named by cfg and builds the server.
func NewIssuer(cfg *IssuerConfig, passphrase string, log logrus.FieldLogger) (*Issuer, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	env, err := types.ParseEnvironment(cfg.Issuer.Environment)
	if err != nil {
		return nil, err
	}

	secret, err := store.NewIssuerKeyFileStore(cfg.Issuer.KeyDir).LoadIssuerKey(passphrase, env)
	if err != nil {
		return nil, errors.Wrap(err, "load issuer key")
	}

	var profiles domain.ProfileStore
	switch cfg.Issuer.ProfileStore {
	case "file":
		profiles = store.NewProfileFileStore(cfg.Issuer.ProfileDir)
	default:
		profiles = issuer.NewMemoryStore()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := issuer.NewMetrics(reg)

	log = log.WithFields(logrus.Fields{"env": env, "params_id": secret.Public().ID()})
	svc := issuer.New(secret, profiles, clock.New(), metrics, log)

	return &Issuer{
		Service:  svc,
		Handler:  issuer.NewHandler(svc, reg, log).Router(),
		Registry: reg,
		Profiles: profiles,
	}, nil
}
