package commands

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/issuer"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

const testAci = "9d0652a3-dcc3-4d11-975f-74d61598733f"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

// startIssuer runs a development issuer and returns a config file pointing
// staging at it.
func startIssuer(t *testing.T) string {
	t.Helper()
	secret, err := zkcred.GenerateServerSecretParams(types.Staging, rand.Reader)
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	reg := prometheus.NewRegistry()
	svc := issuer.New(secret, issuer.NewMemoryStore(), nil, issuer.NewMetrics(reg), log)
	srv := httptest.NewServer(issuer.NewHandler(svc, reg, log).Router())
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "profilecred.toml")
	body := "[retry]\nmax_attempts = 1\n\n[environments.staging]\n" +
		"chat_url = \"" + srv.URL + "\"\n" +
		"params = \"" + crypto.B64(secret.Public().Serialize()) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func randomKeyHex(t *testing.T) string {
	t.Helper()
	b := make([]byte, types.ProfileKeyLen)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return hex.EncodeToString(b)
}

func TestRegisterThenFetch(t *testing.T) {
	config := startIssuer(t)
	key := randomKeyHex(t)

	out, err := run(t, "--config", config, "register", "staging", testAci, key)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Registered")

	out, err = run(t, "--config", config, "fetch", "staging", "ACI:"+testAci, key)
	require.NoError(t, err, out)
	assert.Contains(t, out, "credential for "+testAci+" valid until")
}

func TestFetchUnregisteredFails(t *testing.T) {
	config := startIssuer(t)

	_, err := run(t, "--config", config, "fetch", "staging", testAci, randomKeyHex(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchRejectsBadArguments(t *testing.T) {
	_, err := run(t, "fetch", "dev", testAci, randomKeyHex(t))
	assert.True(t, errors.Is(err, types.ErrUnknownEnvironment), "got %v", err)

	_, err = run(t, "fetch", "staging", "not-an-aci", randomKeyHex(t))
	assert.True(t, errors.Is(err, types.ErrInvalidAci), "got %v", err)

	_, err = run(t, "fetch", "prod", testAci, "abcd")
	assert.True(t, errors.Is(err, types.ErrInvalidProfileKey), "got %v", err)

	_, err = run(t, "fetch", "staging")
	assert.Error(t, err)
}

func TestAccessKey(t *testing.T) {
	out, err := run(t, "access-key", strings.Repeat("00", 32))
	require.NoError(t, err)
	assert.Equal(t, crypto.DeriveAccessKey(types.ProfileKey{}).Base64()+"\n", out)
}

func TestParams(t *testing.T) {
	for _, env := range []string{"staging", "prod"} {
		out, err := run(t, "params", env)
		require.NoError(t, err)
		assert.Contains(t, out, "params id:")
		assert.Contains(t, out, "https://chat.")
	}
}
