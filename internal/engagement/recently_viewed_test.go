package engagement

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/config"
	"github.com/Rotimanchase/byc-storefront/internal/httpclient"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
	"github.com/Rotimanchase/byc-storefront/internal/stubapi"
)

func newEnv(t *testing.T) (*stubapi.Server, *api.API, *storage.MemoryStore, *logrus.Logger) {
	t.Helper()
	stub := stubapi.New()
	srv := httptest.NewServer(stub.Router)
	t.Cleanup(srv.Close)

	kv := storage.NewMemory()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		Environment: "production",
		API:         config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
	}
	return stub, api.New(httpclient.New(cfg, kv, log)), kv, log
}

func seedProducts(stub *stubapi.Server, n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = stub.SeedProduct(models.Product{Name: "BOXERS", Price: models.N(2500)})
	}
	return out
}

func TestAddKeepsMostRecentFirstCappedAtFive(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)
	ctx := context.Background()

	products := seedProducts(stub, 6)
	for _, p := range products {
		require.NoError(t, rv.Add(ctx, p.ID, false))
	}

	got := rv.Products()
	require.Len(t, got, MaxRecentlyViewed)
	// Newest first; the very first view fell off the end.
	assert.Equal(t, products[5].ID, got[0].ID)
	assert.Equal(t, products[1].ID, got[4].ID)

	ids := storage.GetStringSlice(kv, storage.KeyRecentlyViewed)
	assert.Len(t, ids, MaxRecentlyViewed)
	assert.Equal(t, products[5].ID, ids[0])
}

func TestAddMovesRepeatViewToFront(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)
	ctx := context.Background()

	products := seedProducts(stub, 3)
	for _, p := range products {
		require.NoError(t, rv.Add(ctx, p.ID, false))
	}
	require.NoError(t, rv.Add(ctx, products[0].ID, false))

	got := rv.Products()
	require.Len(t, got, 3)
	assert.Equal(t, products[0].ID, got[0].ID)
	assert.Equal(t, products[2].ID, got[1].ID)
	assert.Equal(t, products[1].ID, got[2].ID)
}

func TestAddRejectsMalformedIDBeforeAnyRequest(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)

	err := rv.Add(context.Background(), "definitely-not-an-id", false)

	var invalidErr *InvalidIDError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "definitely-not-an-id", invalidErr.ID)
	assert.Zero(t, stub.TotalRequests())
}

func TestAddMirrorsToServerOnlyWhenSignedIn(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)
	ctx := context.Background()

	p := seedProducts(stub, 1)[0]

	require.NoError(t, rv.Add(ctx, p.ID, false))
	assert.Zero(t, stub.Hits("POST", "/api/user/recently-viewed"))

	kv.Set(storage.KeyToken, stub.UserToken)
	require.NoError(t, rv.Add(ctx, p.ID, true))
	assert.Equal(t, 1, stub.Hits("POST", "/api/user/recently-viewed"))
}

func TestFetchUnionsServerHistoryBehindLocal(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)
	ctx := context.Background()
	kv.Set(storage.KeyToken, stub.UserToken)

	products := seedProducts(stub, 3)
	// Local history knows products[0]; the server additionally has [1] and [2].
	require.NoError(t, storage.SetStringSlice(kv, storage.KeyRecentlyViewed, []string{products[0].ID}))
	require.NoError(t, backend.AddRecentlyViewed(ctx, products[1].ID))
	require.NoError(t, backend.AddRecentlyViewed(ctx, products[2].ID))

	got, err := rv.Fetch(ctx, true)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, products[0].ID, got[0].ID)
}

func TestFetchSkipsInvalidAndMissingIDs(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)

	p := seedProducts(stub, 1)[0]
	require.NoError(t, storage.SetStringSlice(kv, storage.KeyRecentlyViewed,
		[]string{"garbage", "ffffffffffffffffffffffff", p.ID}))

	got, err := rv.Fetch(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
}

func TestClearEmptiesLocalAndServerHistory(t *testing.T) {
	stub, backend, kv, log := newEnv(t)
	rv := NewRecentlyViewed(backend, kv, log)
	ctx := context.Background()
	kv.Set(storage.KeyToken, stub.UserToken)

	p := seedProducts(stub, 1)[0]
	require.NoError(t, rv.Add(ctx, p.ID, true))

	require.NoError(t, rv.Clear(ctx, true))
	assert.Empty(t, rv.Products())
	assert.Empty(t, storage.GetStringSlice(kv, storage.KeyRecentlyViewed))
	assert.Equal(t, 1, stub.Hits("DELETE", "/api/user/recently-viewed"))
}

func TestDeviceIDIsStable(t *testing.T) {
	kv := storage.NewMemory()
	first := DeviceID(kv)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, DeviceID(kv))
}
