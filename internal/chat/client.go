package chat

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

const (
	accessKeyHeader = "Unidentified-Access-Key"
	maxBodyBytes    = 1 << 20
)

// HTTPClient talks to one chat service over HTTP.
type HTTPClient struct {
	Base  string
	HTTP  *http.Client
	Retry RetryPolicy
	Log   logrus.FieldLogger
}

var _ domain.CredentialTransport = (*HTTPClient)(nil)

// NewHTTP returns a client for base with default retry and logging.
func NewHTTP(base string) *HTTPClient {
	return &HTTPClient{
		Base: strings.TrimRight(base, "/"),
		HTTP: http.DefaultClient,
		Log:  logrus.StandardLogger(),
	}
}

// GetProfileKeyCredential requests an expiring profile key credential for
// aci. The profile key only leaves the process as its version.
func (c *HTTPClient) GetProfileKeyCredential(
	ctx context.Context,
	aci domain.Aci,
	profileKey domain.ProfileKey,
	request *zkcred.CredentialRequest,
	accessKey domain.AccessKey,
) (*zkcred.CredentialResponse, error) {
	version := crypto.ProfileKeyVersion(profileKey, aci)
	path := "/v1/profile/" + url.PathEscape(aci.String()) +
		"/" + url.PathEscape(version.String()) +
		"/" + hex.EncodeToString(request.Serialize()) +
		"?credentialType=expiringProfileKey"

	hdr := http.Header{}
	hdr.Set(accessKeyHeader, accessKey.Base64())

	var reply domain.CredentialReply
	if err := c.do(ctx, http.MethodGet, path, hdr, nil, &reply); err != nil {
		return nil, err
	}
	if reply.Credential == "" {
		return nil, errors.Wrap(zkcred.ErrDecode, "no credential in profile response")
	}
	raw, err := crypto.FromB64(reply.Credential)
	if err != nil {
		return nil, errors.Wrapf(zkcred.ErrDecode, "credential: %v", err)
	}
	return zkcred.DeserializeCredentialResponse(raw)
}

// SetProfile registers version and the access key for aci.
func (c *HTTPClient) SetProfile(
	ctx context.Context,
	aci domain.Aci,
	version domain.ProfileKeyVersion,
	accessKey domain.AccessKey,
) error {
	body := domain.SetProfileRequest{Version: version, UnidentifiedAccessKey: accessKey}
	return c.do(ctx, http.MethodPut, "/v1/profile/"+url.PathEscape(aci.String()), nil, body, nil)
}

// keepalive checks that the service answers at all.
func (c *HTTPClient) keepalive(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/keepalive", nil, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, hdr http.Header, in, out any) error {
	u := c.Base + path

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return &TransportError{Method: method, URL: u, Err: errors.Wrap(err, "encode body")}
		}
	}

	attempt := 0
	op := func() error {
		attempt++
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return backoff.Permanent(&TransportError{Method: method, URL: u, Err: err})
		}
		for k, vs := range hdr {
			req.Header[k] = vs
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient().Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(&TransportError{Method: method, URL: u, Err: ctx.Err()})
			}
			return &TransportError{Method: method, URL: u, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode/100 != 2 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			te := &TransportError{Method: method, URL: u, StatusCode: resp.StatusCode, Err: statusError(resp.StatusCode)}
			if retryable(resp.StatusCode) {
				return te
			}
			return backoff.Permanent(te)
		}
		if out != nil {
			if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
				return backoff.Permanent(&TransportError{
					Method: method, URL: u, StatusCode: resp.StatusCode,
					Err: errors.Wrap(err, "decode body"),
				})
			}
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger().WithFields(logrus.Fields{
			"attempt": attempt,
			"wait":    wait,
		}).Warnf("retrying: %v", err)
	}

	err := backoff.RetryNotify(op, c.Retry.backOff(ctx), notify)
	if err == nil {
		return nil
	}
	var te *TransportError
	if !errors.As(err, &te) {
		err = &TransportError{Method: method, URL: u, Err: err}
	}
	return err
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *HTTPClient) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}
