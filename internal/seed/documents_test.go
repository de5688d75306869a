package seed

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
)

func TestUserDocumentHashesPassword(t *testing.T) {
	u := fixtures.CustomerUser()
	doc, err := userDocument(u, time.Now().UTC())
	require.NoError(t, err)

	hash, ok := doc["password"].(string)
	require.True(t, ok)
	require.NotEqual(t, u.Password, hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(u.Password)))

	// no key fields on a plain active user
	_, hasActivation := doc["activationKey"]
	_, hasReset := doc["resetKey"]
	assert.False(t, hasActivation)
	assert.False(t, hasReset)
	assert.Equal(t, u.ID, doc["_id"])
	assert.Equal(t, true, doc["activated"])
}

func TestUserDocumentCarriesKeys(t *testing.T) {
	pending := fixtures.PendingActivationUser(fixtures.BrowserFirefox)
	doc, err := userDocument(pending, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, pending.ActivationKey, doc["activationKey"])
	assert.Equal(t, false, doc["activated"])

	reset := fixtures.PendingResetUser(fixtures.BrowserDefault)
	doc, err = userDocument(reset, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, reset.ResetKey, doc["resetKey"])
	assert.Equal(t, *reset.ResetDate, doc["resetDate"])
}

func TestCouponDocumentExpiryWindows(t *testing.T) {
	now := time.Now().UTC()

	active, err := couponDocument(fixtures.Coupons()[0], now)
	require.NoError(t, err)
	assert.Equal(t, true, active["active"])
	assert.True(t, active["validUntil"].(time.Time).After(now))

	expired, err := couponDocument(fixtures.ExpiredCoupon(), now)
	require.NoError(t, err)
	assert.Equal(t, false, expired["active"])
	assert.True(t, expired["validUntil"].(time.Time).Before(now))
}

func TestOrderDocumentShape(t *testing.T) {
	o, err := fixtures.OrderByID("fixture-order-1001")
	require.NoError(t, err)
	// exercise the two-decimal rule with a long fraction
	o.Subtotal = decimal.RequireFromString("19.999")

	now := time.Now().UTC()
	doc, err := orderDocument(o, now)
	require.NoError(t, err)

	assert.Equal(t, orderClass, doc["_class"])
	assert.Equal(t, "fixture-user-customer", doc["userId"])

	sub, ok := doc["subtotal"].(primitive.Decimal128)
	require.True(t, ok, "subtotal must be Decimal128, not a float")
	assert.Equal(t, "20.00", sub.String())

	total, ok := doc["total"].(primitive.Decimal128)
	require.True(t, ok)
	assert.Equal(t, "80.36", total.String())
}

func TestOrderDocumentItems(t *testing.T) {
	o, err := fixtures.OrderByID("fixture-order-1001")
	require.NoError(t, err)
	doc, err := orderDocument(o, time.Now().UTC())
	require.NoError(t, err)

	items, ok := doc["items"].(bson.A)
	require.True(t, ok)
	require.Len(t, items, 2)

	first, ok := items[0].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "creatine-monohydrate-500g", first["productSlug"])
	assert.Equal(t, 2, first["quantity"])
	_, isDecimal := first["unitPrice"].(primitive.Decimal128)
	assert.True(t, isDecimal)
}

func TestBatchIdentityDerivesFromProductID(t *testing.T) {
	assert.Equal(t, "batch-abc123", batchID("abc123"))

	doc := batchDocument("abc123", "creatine-monohydrate-500g", 250, time.Now().UTC())
	assert.Equal(t, "batch-abc123", doc["_id"])
	assert.Equal(t, "abc123", doc["productId"])
	assert.Equal(t, 250, doc["availableQuantity"])
}

func TestBitcoinPaymentDocumentTrustsAuthoredFlags(t *testing.T) {
	p, err := fixtures.BitcoinPaymentByID("fixture-btc-pay-2")
	require.NoError(t, err)
	doc, err := bitcoinPaymentDocument(p, time.Now().UTC())
	require.NoError(t, err)

	// authored as underpaid even though the seeder could derive it
	assert.Equal(t, true, doc["underpaid"])
	assert.Equal(t, false, doc["overpaid"])
	assert.Equal(t, int64(43000), doc["amountReceivedSats"])

	rate, ok := doc["btcUsdRate"].(primitive.Decimal128)
	require.True(t, ok)
	assert.Equal(t, "65250.00", rate.String())
}

func TestPaymentConfigDocuments(t *testing.T) {
	configs := fixtures.PaymentMethodConfigurations()
	require.Len(t, configs, 5)

	enabled := map[string]bool{}
	for _, c := range configs {
		doc := paymentConfigDocument(c, time.Now().UTC())
		assert.Equal(t, c.ID, doc["_id"])
		enabled[c.Method] = doc["enabled"].(bool)
	}
	assert.True(t, enabled["CASH_APP"])
	assert.True(t, enabled["SOLANA_PAY"])
	assert.True(t, enabled["BITCOIN"])
	assert.False(t, enabled["ZELLE"])
	assert.False(t, enabled["ACH"])
}
