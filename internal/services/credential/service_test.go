package credential_test

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
	"github.com/ctstone/libsignal/internal/services/credential"
)

type fakeParams map[types.Environment]*zkcred.ServerPublicParams

func (f fakeParams) Load(env types.Environment) (*zkcred.ServerPublicParams, error) {
	p, ok := f[env]
	if !ok {
		return nil, types.ErrUnknownEnvironment
	}
	return p, nil
}

func (f fakeParams) ChatURL(env types.Environment) (string, error) { return "http://chat.invalid", nil }

// fakeChat issues credentials in process with the clock it is given.
type fakeChat struct {
	secret     *zkcred.ServerSecretParams
	clock      clock.Clock
	issueFor   types.Aci
	connectErr error
	fetchErr   error

	gotAccessKey types.AccessKey
	gotVersion   types.ProfileKeyVersion
}

func (f *fakeChat) Connect(ctx context.Context, env types.Environment) (domain.CredentialTransport, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f, nil
}

func (f *fakeChat) GetProfileKeyCredential(
	ctx context.Context,
	aci types.Aci,
	profileKey types.ProfileKey,
	request *zkcred.CredentialRequest,
	accessKey types.AccessKey,
) (*zkcred.CredentialResponse, error) {
	f.gotAccessKey = accessKey
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	target := aci
	if f.issueFor != (types.Aci{}) {
		target = f.issueFor
	}
	return zkcred.IssueExpiringProfileKeyCredential(f.secret, request, target, zkcred.CredentialExpiration(f.clock.Now()))
}

func (f *fakeChat) SetProfile(ctx context.Context, aci types.Aci, version types.ProfileKeyVersion, accessKey types.AccessKey) error {
	f.gotVersion = version
	f.gotAccessKey = accessKey
	return nil
}

type fixture struct {
	svc    *credential.Service
	chat   *fakeChat
	clock  *clock.Mock
	issuer *clock.Mock
	hook   *logtest.Hook
	aci    types.Aci
	pk     types.ProfileKey
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	secret, err := zkcred.GenerateServerSecretParams(types.Staging, rand.Reader)
	require.NoError(t, err)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	clientClock, issuerClock := clock.NewMock(), clock.NewMock()
	clientClock.Set(now)
	issuerClock.Set(now)

	aci, err := types.ParseAci("9d0652a3-dcc3-4d11-975f-74d61598733f")
	require.NoError(t, err)
	var pk types.ProfileKey
	_, err = rand.Read(pk[:])
	require.NoError(t, err)

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	fc := &fakeChat{secret: secret, clock: issuerClock}
	svc := credential.New(fakeParams{types.Staging: secret.Public()}, fc, clientClock, log)
	return &fixture{svc: svc, chat: fc, clock: clientClock, issuer: issuerClock, hook: hook, aci: aci, pk: pk}
}

func TestFetchProfileKeyCredential(t *testing.T) {
	f := newFixture(t)

	cred, err := f.svc.FetchProfileKeyCredential(context.Background(), types.Staging, f.aci, f.pk)
	require.NoError(t, err)
	assert.Equal(t, f.aci, cred.Aci())
	assert.True(t, cred.Contains(f.clock.Now()))
	assert.Equal(t, crypto.DeriveAccessKey(f.pk), f.chat.gotAccessKey)

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "success!", entry.Message)
	assert.Equal(t, cred.Expiration().Format(time.RFC3339), entry.Data["expiration"])
	assert.Equal(t, types.Staging, entry.Data["env"])
	for _, e := range f.hook.AllEntries() {
		s, _ := e.String()
		assert.NotContains(t, s, crypto.B64(f.pk[:]))
	}
}

func TestFetchRejectsStaleCredential(t *testing.T) {
	f := newFixture(t)
	f.clock.Add(7*24*time.Hour + time.Second)

	_, err := f.svc.FetchProfileKeyCredential(context.Background(), types.Staging, f.aci, f.pk)
	assert.True(t, errors.Is(err, zkcred.ErrExpiredCredential), "got %v", err)
	assert.Empty(t, f.hook.AllEntries())
}

func TestFetchRejectsCredentialForAnotherAci(t *testing.T) {
	f := newFixture(t)
	other, err := types.ParseAci("3f0f4734-e331-4434-bd4f-6d8f6ea6dcc7")
	require.NoError(t, err)
	f.chat.issueFor = other

	_, err = f.svc.FetchProfileKeyCredential(context.Background(), types.Staging, f.aci, f.pk)
	assert.True(t, errors.Is(err, zkcred.ErrInvalidProof), "got %v", err)
}

func TestFetchPropagatesFailures(t *testing.T) {
	errBoom := errors.New("boom")

	f := newFixture(t)
	_, err := f.svc.FetchProfileKeyCredential(context.Background(), types.Production, f.aci, f.pk)
	assert.True(t, errors.Is(err, types.ErrUnknownEnvironment), "got %v", err)

	f = newFixture(t)
	f.chat.connectErr = errBoom
	_, err = f.svc.FetchProfileKeyCredential(context.Background(), types.Staging, f.aci, f.pk)
	assert.True(t, errors.Is(err, errBoom), "got %v", err)
	assert.Contains(t, err.Error(), "connect")

	f = newFixture(t)
	f.chat.fetchErr = errBoom
	_, err = f.svc.FetchProfileKeyCredential(context.Background(), types.Staging, f.aci, f.pk)
	assert.True(t, errors.Is(err, errBoom), "got %v", err)
	assert.Contains(t, err.Error(), "request credential")
}

func TestRegisterProfile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.RegisterProfile(context.Background(), types.Staging, f.aci, f.pk))
	assert.Equal(t, crypto.ProfileKeyVersion(f.pk, f.aci), f.chat.gotVersion)
	assert.Equal(t, f.svc.AccessKey(f.pk), f.chat.gotAccessKey)
}
