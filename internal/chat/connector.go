package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/domain"
)

// Connector turns an environment into a probed HTTPClient.
type Connector struct {
	Params domain.ParameterStore
	HTTP   *http.Client
	Retry  RetryPolicy
	Log    logrus.FieldLogger
}

var _ domain.Connector = (*Connector)(nil)

// Connect resolves env's chat URL and checks the service is reachable.
func (c *Connector) Connect(ctx context.Context, env domain.Environment) (domain.CredentialTransport, error) {
	base, err := c.Params.ChatURL(env)
	if err != nil {
		return nil, errors.Wrap(err, "resolve chat URL")
	}
	log := c.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	client := &HTTPClient{
		Base:  strings.TrimRight(base, "/"),
		HTTP:  c.HTTP,
		Retry: c.Retry,
		Log:   log.WithField("env", env),
	}
	if err := client.keepalive(ctx); err != nil {
		return nil, err
	}
	client.Log.Debug("connected to chat service")
	return client, nil
}
