package bootstrap

// Full bootstrap run against a real mongod and a stubbed backend. Gated on
// HARNESS_MONGO_URI like the seeder integration tests.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/config"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/seed"
)

// stubBackend imitates the slice of the storefront backend the bootstrap
// touches. Registration writes a user document with its own generated id,
// which is exactly the mismatch order reconciliation exists for.
type stubBackend struct {
	db            *mongo.Database
	productClears int32
	userClears    int32
	configRefresh int32
	registrations int32
}

func (sb *stubBackend) router() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/management/health", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	})
	r.Post("/api/register", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Login string `json:"login"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		n := atomic.AddInt32(&sb.registrations, 1)
		_, err := sb.db.Collection(seed.CollUsers).InsertOne(req.Context(), bson.M{
			"_id":       fmt.Sprintf("backend-assigned-%03d", n),
			"login":     body.Login,
			"email":     body.Email,
			"activated": false,
		})
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("already exists"))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	r.Post("/api/authenticate", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"id_token":"stub-admin-token"}`))
	})
	authed := func(counter *int32) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("Authorization") != "Bearer stub-admin-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			atomic.AddInt32(counter, 1)
			w.WriteHeader(http.StatusOK)
		}
	}
	r.Post("/api/admin/cache/products/clear", authed(&sb.productClears))
	r.Post("/api/admin/cache/users/clear", authed(&sb.userClears))
	r.Post("/api/admin/payment-method-configurations/refresh", authed(&sb.configRefresh))
	return r
}

func TestBootstrapEndToEnd(t *testing.T) {
	uri := os.Getenv("HARNESS_MONGO_URI")
	if uri == "" {
		t.Skip("HARNESS_MONGO_URI not set")
	}
	ctx := context.Background()
	dbName := fmt.Sprintf("zenith_bootstrap_test_%d", time.Now().UnixNano())

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database(dbName)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	sb := &stubBackend{db: db}
	srv := httptest.NewServer(sb.router())
	defer srv.Close()

	cfg := config.Defaults()
	cfg.Mongo.URI = uri
	cfg.Mongo.Database = dbName
	cfg.Backend.URL = srv.URL
	cfg.Frontend.URL = "http://localhost:3000"

	New(cfg).Run(ctx)

	// every registerable user exists, activated, with its authorities
	for _, u := range fixtures.RegisterableUsers() {
		var doc bson.M
		require.NoError(t, db.Collection(seed.CollUsers).FindOne(ctx, bson.M{"email": u.Email}).Decode(&doc), u.Email)
		assert.Equal(t, true, doc["activated"], u.Email)
	}

	// special users seeded directly, keys intact
	pending := fixtures.PendingActivationUser(fixtures.BrowserDefault)
	var doc bson.M
	require.NoError(t, db.Collection(seed.CollUsers).FindOne(ctx, bson.M{"_id": pending.ID}).Decode(&doc))
	assert.Equal(t, pending.ActivationKey, doc["activationKey"])
	assert.Equal(t, false, doc["activated"])

	// orders rewritten to the backend-assigned owner ids
	owners := fixtures.OrderOwners()
	for email, fixtureID := range owners {
		var u struct {
			ID string `bson:"_id"`
		}
		require.NoError(t, db.Collection(seed.CollUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u))
		require.NotEqual(t, fixtureID, u.ID, "stub must assign its own ids")

		n, err := db.Collection(seed.CollOrders).CountDocuments(ctx, bson.M{"userId": fixtureID})
		require.NoError(t, err)
		assert.Zero(t, n, "no order may keep the fixture owner id %s", fixtureID)
	}
	total, err := db.Collection(seed.CollOrders).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, len(fixtures.Orders()), total)

	// catalog, batches and payment configs are in place
	n, err := db.Collection(seed.CollProducts).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, len(fixtures.Products()), n)
	n, err = db.Collection(seed.CollPaymentConfigs).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	zero := fixtures.OutOfStockProduct()
	n, err = db.Collection(seed.CollBatches).CountDocuments(ctx, bson.M{"batchNumber": "E2E-" + zero.Slug})
	require.NoError(t, err)
	assert.Zero(t, n)

	// cache invalidation ran last, once each
	assert.EqualValues(t, 1, atomic.LoadInt32(&sb.productClears))
	assert.EqualValues(t, 1, atomic.LoadInt32(&sb.userClears))
	assert.EqualValues(t, 1, atomic.LoadInt32(&sb.configRefresh))
}

func TestBootstrapSurvivesDownBackend(t *testing.T) {
	uri := os.Getenv("HARNESS_MONGO_URI")
	if uri == "" {
		t.Skip("HARNESS_MONGO_URI not set")
	}
	ctx := context.Background()
	dbName := fmt.Sprintf("zenith_bootstrap_down_%d", time.Now().UnixNano())

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database(dbName)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	cfg := config.Defaults()
	cfg.Mongo.URI = uri
	cfg.Mongo.Database = dbName
	// nothing listens here; registration and cache phases degrade to warnings
	cfg.Backend.URL = "http://127.0.0.1:1"

	// must not panic or hang, and must still seed what the database alone covers
	New(cfg).Run(ctx)

	n, err := db.Collection(seed.CollProducts).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, len(fixtures.Products()), n)
}
