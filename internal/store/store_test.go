package store_test

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/ctstone/libsignal/internal/domain"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
	"github.com/ctstone/libsignal/internal/store"
)

func newSecret(t *testing.T, env types.Environment) *zkcred.ServerSecretParams {
	t.Helper()
	secret, err := zkcred.GenerateServerSecretParams(env, rand.Reader)
	if err != nil {
		t.Fatalf("generate secret: %v", err)
	}
	return secret
}

func TestIssuerKey_SaveLoad_OK(t *testing.T) {
	var keys domain.IssuerKeyStore = store.NewIssuerKeyFileStore(t.TempDir())
	secret := newSecret(t, types.Staging)

	if err := keys.SaveIssuerKey("pass", secret); err != nil {
		t.Fatalf("save issuer key: %v", err)
	}
	got, err := keys.LoadIssuerKey("pass", types.Staging)
	if err != nil {
		t.Fatalf("load issuer key: %v", err)
	}
	if got.Public().ID() != secret.Public().ID() {
		t.Fatalf("params ID mismatch after load: %s != %s", got.Public().ID(), secret.Public().ID())
	}
}

func TestIssuerKey_WrongPassphrase_Fails(t *testing.T) {
	keys := store.NewIssuerKeyFileStore(t.TempDir())
	if err := keys.SaveIssuerKey("correct", newSecret(t, types.Production)); err != nil {
		t.Fatalf("save issuer key: %v", err)
	}
	if _, err := keys.LoadIssuerKey("wrong", types.Production); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestIssuerKey_FileIsNotPlaintext(t *testing.T) {
	keys := store.NewIssuerKeyFileStore(t.TempDir())
	secret := newSecret(t, types.Staging)
	if err := keys.SaveIssuerKey("pass", secret); err != nil {
		t.Fatalf("save issuer key: %v", err)
	}
	b, err := os.ReadFile(keys.Path(types.Staging))
	if err != nil {
		t.Fatalf("read key file: %v", err)
	}
	raw, _ := secret.Serialize()
	if containsBytes(b, raw[2:]) {
		t.Fatal("secret scalar stored in the clear")
	}
	info, err := os.Stat(keys.Path(types.Staging))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("key file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestIssuerKey_SwappedFile_Fails(t *testing.T) {
	dir := t.TempDir()
	keys := store.NewIssuerKeyFileStore(dir)
	if err := keys.SaveIssuerKey("pass", newSecret(t, types.Staging)); err != nil {
		t.Fatalf("save issuer key: %v", err)
	}
	if err := os.Rename(keys.Path(types.Staging), keys.Path(types.Production)); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := keys.LoadIssuerKey("pass", types.Production); err == nil {
		t.Fatal("expected error loading a staging key as production")
	}
}

func TestIssuerKey_Missing(t *testing.T) {
	keys := store.NewIssuerKeyFileStore(t.TempDir())
	if _, err := keys.LoadIssuerKey("pass", types.Staging); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestProfile_SaveLoad_OK(t *testing.T) {
	dir := t.TempDir()
	var profiles domain.ProfileStore = store.NewProfileFileStore(dir)

	aci, err := types.ParseAci("9d0652a3-dcc3-4d11-975f-74d61598733f")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := profiles.LoadProfile(aci); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	p := types.Profile{
		Aci:       aci,
		Versions:  []types.ProfileKeyVersion{"v1"},
		AccessKey: types.AccessKey{9},
		UpdatedAt: 1,
	}
	if err := profiles.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	// A fresh store over the same directory sees the write.
	got, ok, err := store.NewProfileFileStore(dir).LoadProfile(aci)
	if err != nil || !ok {
		t.Fatalf("load profile: ok=%v err=%v", ok, err)
	}
	if got.AccessKey != p.AccessKey || !got.HasVersion("v1") {
		t.Fatalf("mismatch after load: %+v", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "profiles.json")); err != nil {
		t.Fatalf("profiles file: %v", err)
	}
}

func containsBytes(haystack, needle []byte) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == string(needle) {
			return true
		}
	}
	return false
}
