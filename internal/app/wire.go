package app

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/chat"
	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/params"
	credentialsvc "github.com/ctstone/libsignal/internal/services/credential"
)

// Wire bundles the parameter store, transport and service for the CLI.
type Wire struct {
	Params      *params.Store
	Connector   *chat.Connector
	Credentials domain.CredentialService
	Log         logrus.FieldLogger
}

// NewWire constructs the client dependency graph from cfg. httpClient may
// be nil.
func NewWire(cfg *ClientConfig, httpClient *http.Client, log logrus.FieldLogger) (*Wire, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	table, err := params.DefaultTable().Merge(cfg.Environments)
	if err != nil {
		return nil, err
	}
	paramStore := params.NewStore(table)

	connector := &chat.Connector{
		Params: paramStore,
		HTTP:   httpClient,
		Retry:  cfg.Retry.Policy(),
		Log:    log,
	}

	return &Wire{
		Params:      paramStore,
		Connector:   connector,
		Credentials: credentialsvc.New(paramStore, connector, clock.New(), log),
		Log:         log,
	}, nil
}
