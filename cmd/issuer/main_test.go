package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
	"github.com/ctstone/libsignal/internal/store"
)

func TestKeygen(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ISSUER_ISSUER_PASSPHRASE", "hunter2")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"keygen", "--env", "prod", "--out", dir})
	require.NoError(t, root.Execute())

	m := regexp.MustCompile(`params = "([^"]+)"`).FindStringSubmatch(out.String())
	require.Len(t, m, 2, out.String())
	raw, err := crypto.FromB64(m[1])
	require.NoError(t, err)
	pub, err := zkcred.DeserializeServerPublicParams(raw)
	require.NoError(t, err)
	assert.Equal(t, types.Production, pub.Environment())
	assert.Contains(t, out.String(), "[environments.production]")

	secret, err := store.NewIssuerKeyFileStore(dir).LoadIssuerKey("hunter2", types.Production)
	require.NoError(t, err)
	assert.Equal(t, pub.ID(), secret.Public().ID())
}

func TestKeygenRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("ISSUER_ISSUER_PASSPHRASE", "hunter2")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"keygen", "--env", "dev", "--out", t.TempDir()})
	assert.ErrorIs(t, root.Execute(), types.ErrUnknownEnvironment)
}
