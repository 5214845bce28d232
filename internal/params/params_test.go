package params_test

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/params"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
)

func TestDefaultTableDecodes(t *testing.T) {
	store := params.NewStore(params.DefaultTable())
	for _, env := range types.Environments() {
		p, err := store.Load(env)
		require.NoError(t, err, env)
		assert.Equal(t, env, p.Environment())

		url, err := store.ChatURL(env)
		require.NoError(t, err)
		assert.Contains(t, url, "https://")
	}

	staging, _ := store.Load(types.Staging)
	production, _ := store.Load(types.Production)
	assert.NotEqual(t, staging.ID(), production.ID())
}

func TestLoadCaches(t *testing.T) {
	store := params.NewStore(params.DefaultTable())

	var wg sync.WaitGroup
	got := make([]*zkcred.ServerPublicParams, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = store.Load(types.Staging)
		}(i)
	}
	wg.Wait()
	for _, p := range got {
		assert.Same(t, got[0], p)
	}
}

func TestLoadErrors(t *testing.T) {
	secret, err := zkcred.GenerateServerSecretParams(types.Production, rand.Reader)
	require.NoError(t, err)
	productionBlob := base64.StdEncoding.EncodeToString(secret.Public().Serialize())

	cases := []struct {
		name string
		blob string
		want error
	}{
		{"not base64", "%%%", zkcred.ErrDecode},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte{0, 1, 2}), zkcred.ErrDecode},
		{"wrong environment", productionBlob, zkcred.ErrParameterMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := params.DefaultTable().Merge(map[string]params.Entry{"staging": {Params: tc.blob}})
			require.NoError(t, err)
			store := params.NewStore(table)

			_, err = store.Load(types.Staging)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			_, again := store.Load(types.Staging)
			assert.Equal(t, err, again)
		})
	}

	_, err = params.NewStore(params.DefaultTable()).Load(types.Environment("dev"))
	assert.True(t, errors.Is(err, params.ErrUnknownEnvironment))
	_, err = params.NewStore(params.DefaultTable()).ChatURL(types.Environment("dev"))
	assert.True(t, errors.Is(err, params.ErrUnknownEnvironment))
}

func TestMerge(t *testing.T) {
	base := params.DefaultTable()
	merged, err := base.Merge(map[string]params.Entry{"prod": {ChatURL: "http://localhost:8080/"}})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", merged[types.Production].ChatURL)
	assert.Equal(t, base[types.Production].Params, merged[types.Production].Params)
	assert.Equal(t, "https://chat.signal.org", base[types.Production].ChatURL)

	_, err = base.Merge(map[string]params.Entry{"dev": {}})
	assert.True(t, errors.Is(err, types.ErrUnknownEnvironment))
}
