package seed

// Integration coverage against a real mongod. Gated on HARNESS_MONGO_URI so
// plain `go test ./...` stays green on machines without the stack:
//
//	HARNESS_MONGO_URI=mongodb://localhost:27017 go test ./internal/seed/

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
)

func testSeeder(t *testing.T) (*Seeder, context.Context) {
	t.Helper()
	uri := os.Getenv("HARNESS_MONGO_URI")
	if uri == "" {
		t.Skip("HARNESS_MONGO_URI not set")
	}
	ctx := context.Background()
	s := New(uri, fmt.Sprintf("zenith_seed_test_%d", time.Now().UnixNano()))
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Disconnect(context.Background())
	})
	return s, ctx
}

func TestDisconnectSafeWithoutConnect(t *testing.T) {
	s := New("mongodb://localhost:27017", "never_used")
	require.NoError(t, s.Disconnect(context.Background()))
	// and again after a no-op disconnect
	require.NoError(t, s.Disconnect(context.Background()))
}

func TestOperationsRequireConnection(t *testing.T) {
	s := New("mongodb://localhost:27017", "never_used")
	err := s.SeedCoupons(context.Background(), fixtures.Coupons())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestConnectIsIdempotent(t *testing.T) {
	s, ctx := testSeeder(t)
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Connect(ctx))
}

func TestSeedProductsUpsertsBySlug(t *testing.T) {
	s, ctx := testSeeder(t)
	products := fixtures.Products()

	require.NoError(t, s.SeedProducts(ctx, products))
	require.NoError(t, s.SeedProducts(ctx, products))

	coll := s.db.Collection(CollProducts)
	for _, p := range products {
		n, err := coll.CountDocuments(ctx, bson.M{"slug": p.Slug})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "slug %s must have exactly one document", p.Slug)
	}

	// second seed with a changed price updates in place
	changed := products[0]
	changed.Price = decimal.RequireFromString("99.99")
	require.NoError(t, s.SeedProducts(ctx, []fixtures.TestProduct{changed}))

	var doc bson.M
	require.NoError(t, coll.FindOne(ctx, bson.M{"slug": changed.Slug}).Decode(&doc))
	assert.Equal(t, "99.99", fmt.Sprint(doc["price"]))
	n, err := coll.CountDocuments(ctx, bson.M{"slug": changed.Slug})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSeedInventoryBatches(t *testing.T) {
	s, ctx := testSeeder(t)

	seeded := fixtures.TestProduct{
		ID:        "fixture-test-item",
		Slug:      "test-item",
		Name:      "Test Item",
		Category:  "PERFORMANCE",
		Price:     decimal.RequireFromString("10.00"),
		Inventory: 5,
	}
	outOfStock := fixtures.OutOfStockProduct()
	neverSeeded := fixtures.TestProduct{Slug: "ghost-product", Inventory: 10, Price: decimal.RequireFromString("1.00")}

	require.NoError(t, s.SeedProducts(ctx, []fixtures.TestProduct{seeded, outOfStock}))

	// unknown slug is skipped without error
	require.NoError(t, s.SeedInventoryBatches(ctx, []fixtures.TestProduct{seeded, outOfStock, neverSeeded}))

	batches := s.db.Collection(CollBatches)

	// the actual persisted id, not the fixture's
	var prod struct {
		ID string `bson:"_id"`
	}
	require.NoError(t, s.db.Collection(CollProducts).FindOne(ctx, bson.M{"slug": "test-item"}).Decode(&prod))

	var batch bson.M
	require.NoError(t, batches.FindOne(ctx, bson.M{"productId": prod.ID}).Decode(&batch))
	assert.EqualValues(t, 5, batch["availableQuantity"])

	// zero inventory means zero batches
	n, err := batches.CountDocuments(ctx, bson.M{"batchNumber": "E2E-" + outOfStock.Slug})
	require.NoError(t, err)
	assert.Zero(t, n)

	// reseeding replaces instead of accumulating
	require.NoError(t, s.SeedInventoryBatches(ctx, []fixtures.TestProduct{seeded}))
	n, err = batches.CountDocuments(ctx, bson.M{"productId": prod.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestResetDatabasePreservesAllowList(t *testing.T) {
	s, ctx := testSeeder(t)

	// populate a preserved, a force-dropped, and an unlisted collection
	_, err := s.db.Collection(CollProducts).InsertOne(ctx, bson.M{"_id": "keep-me", "slug": "keep"})
	require.NoError(t, err)
	_, err = s.db.Collection("mongockChangeLog").InsertOne(ctx, bson.M{"_id": "migration-1"})
	require.NoError(t, err)
	_, err = s.db.Collection(CollCarts).InsertOne(ctx, bson.M{"_id": "cart-1"})
	require.NoError(t, err)
	_, err = s.db.Collection("random_leftover").InsertOne(ctx, bson.M{"_id": "x"})
	require.NoError(t, err)

	require.NoError(t, s.ResetDatabase(ctx))

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	require.NoError(t, err)
	byName := map[string]bool{}
	for _, n := range names {
		byName[n] = true
	}
	assert.True(t, byName[CollProducts])
	assert.True(t, byName["mongockChangeLog"])
	assert.False(t, byName[CollCarts])
	assert.False(t, byName["random_leftover"])

	// preserved contents untouched
	n, err := s.db.Collection(CollProducts).CountDocuments(ctx, bson.M{"_id": "keep-me"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestResetCollectionMissingIsNoOp(t *testing.T) {
	s, ctx := testSeeder(t)
	require.NoError(t, s.ResetCollection(ctx, "definitely_not_here"))
}

func TestSpecialUsersSurviveReseeding(t *testing.T) {
	s, ctx := testSeeder(t)
	users := fixtures.SpecialUsers()

	require.NoError(t, s.SeedSpecialTestUsers(ctx, users))

	var first bson.M
	coll := s.db.Collection(CollUsers)
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": users[0].ID}).Decode(&first))

	// retries re-upsert without duplicate-key errors
	require.NoError(t, s.SeedSpecialTestUsers(ctx, users))

	var second bson.M
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": users[0].ID}).Decode(&second))
	assert.Equal(t, first["createdDate"], second["createdDate"], "createdDate is insert-only")
	assert.Equal(t, first["createdBy"], second["createdBy"])

	n, err := coll.CountDocuments(ctx, bson.M{"_id": users[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestActivateAndSetupUsers(t *testing.T) {
	s, ctx := testSeeder(t)

	u := fixtures.PendingActivationUser(fixtures.BrowserDefault)
	require.NoError(t, s.SeedUsers(ctx, []fixtures.TestUser{u}))

	require.NoError(t, s.ActivateAndSetupUsers(ctx, []UserActivation{
		{Email: u.Email, Authorities: []string{fixtures.RoleUser, fixtures.RoleAdmin}},
		// missing account logs and continues
		{Email: "ghost@zenithbioscience.test", Authorities: []string{fixtures.RoleUser}},
	}))

	var doc bson.M
	require.NoError(t, s.db.Collection(CollUsers).FindOne(ctx, bson.M{"email": u.Email}).Decode(&doc))
	assert.Equal(t, true, doc["activated"])
	_, hasKey := doc["activationKey"]
	assert.False(t, hasKey, "activation key must be cleared")
	auth, _ := doc["authorities"].(bson.A)
	assert.Len(t, auth, 2)
}

func TestOrderOwnerReconciliation(t *testing.T) {
	s, ctx := testSeeder(t)

	// simulate the backend's registration: same email, its own id
	_, err := s.db.Collection(CollUsers).InsertOne(ctx, bson.M{
		"_id":       "real-99",
		"login":     "a-test",
		"email":     "a@test.com",
		"activated": true,
	})
	require.NoError(t, err)

	order, err := fixtures.OrderByID("fixture-order-1001")
	require.NoError(t, err)
	order.UserID = "fixture-1"
	require.NoError(t, s.SeedOrders(ctx, []fixtures.TestOrder{order}))

	realID, err := s.GetUserIDByEmail(ctx, "a@test.com")
	require.NoError(t, err)
	require.Equal(t, "real-99", realID)

	modified, err := s.UpdateOrderUserIDs(ctx, "fixture-1", realID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	var doc bson.M
	require.NoError(t, s.db.Collection(CollOrders).FindOne(ctx, bson.M{"_id": order.ID}).Decode(&doc))
	assert.Equal(t, "real-99", doc["userId"])

	count, err := s.CountOrdersByUserID(ctx, "real-99")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateOrderUserIDsNoOpWhenEqual(t *testing.T) {
	s, ctx := testSeeder(t)

	order, err := fixtures.OrderByID("fixture-order-2001")
	require.NoError(t, err)
	require.NoError(t, s.SeedOrders(ctx, []fixtures.TestOrder{order}))

	modified, err := s.UpdateOrderUserIDs(ctx, order.UserID, order.UserID)
	require.NoError(t, err)
	assert.Zero(t, modified, "matching ids must write nothing")
}

func TestGetUserIDByEmailNotFound(t *testing.T) {
	s, ctx := testSeeder(t)
	_, err := s.GetUserIDByEmail(ctx, "missing@zenithbioscience.test")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSeedAllOrderAndIdempotentTail(t *testing.T) {
	s, ctx := testSeeder(t)

	fx := Fixtures{
		Users:           fixtures.RegisterableUsers(),
		Products:        fixtures.Products(),
		Coupons:         fixtures.Coupons(),
		Orders:          fixtures.Orders(),
		BitcoinPayments: fixtures.BitcoinPayments(),
	}
	require.NoError(t, s.SeedAll(ctx, fx))

	// payment configs converge on the same five documents every call
	require.NoError(t, s.SeedPaymentMethodConfigurations(ctx))
	n, err := s.db.Collection(CollPaymentConfigs).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	// batches exist only for in-stock products
	inStock := 0
	for _, p := range fx.Products {
		if p.Inventory > 0 {
			inStock++
		}
	}
	n, err = s.db.Collection(CollBatches).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, inStock, n)
}
