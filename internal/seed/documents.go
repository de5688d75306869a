package seed

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/money"
)

// seededBy is the audit author stamped on harness-written documents.
const seededBy = "e2e-harness"

// orderClass is the discriminator the backend's document mapper expects on
// order documents.
const orderClass = "com.zenithbioscience.store.domain.CustomerOrder"

// Coupon validity horizon applied around the seeding timestamp. An expired
// coupon's validUntil is strictly in the past, an active one strictly in
// the future.
const couponValidity = 30 * 24 * time.Hour

// hashPassword produces the bcrypt hash the backend's login path verifies
// against. Registration hashes server-side; users written straight to the
// database need the seeder to do it.
func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func userDocument(u fixtures.TestUser, now time.Time) (bson.M, error) {
	hash, err := hashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	doc := bson.M{
		"_id":              u.ID,
		"login":            u.Login,
		"email":            u.Email,
		"password":         hash,
		"firstName":        u.FirstName,
		"lastName":         u.LastName,
		"activated":        u.Activated,
		"langKey":          u.LangKey,
		"authorities":      u.Authorities,
		"createdBy":        seededBy,
		"createdDate":      now,
		"lastModifiedBy":   seededBy,
		"lastModifiedDate": now,
	}
	if u.ActivationKey != "" {
		doc["activationKey"] = u.ActivationKey
	}
	if u.ResetKey != "" {
		doc["resetKey"] = u.ResetKey
	}
	if u.ResetDate != nil {
		doc["resetDate"] = *u.ResetDate
	}
	return doc, nil
}

// productFields is the $set portion of a product upsert. The fixture id
// only applies on insert; an existing document keeps the id it has.
func productFields(p fixtures.TestProduct) (bson.M, error) {
	price, err := money.ToDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	return bson.M{
		"slug":             p.Slug,
		"name":             p.Name,
		"description":      p.Description,
		"category":         p.Category,
		"price":            price,
		"inventory":        p.Inventory,
		"lastModifiedBy":   seededBy,
		"lastModifiedDate": time.Now().UTC(),
	}, nil
}

// batchID derives the batch identity from the product's persisted id. The
// product id is only known after the product upsert, which is why batches
// are replaced wholesale instead of upserted.
func batchID(productDBID string) string {
	return "batch-" + productDBID
}

func batchDocument(productDBID, slug string, quantity int, now time.Time) bson.M {
	return bson.M{
		"_id":               batchID(productDBID),
		"productId":         productDBID,
		"batchNumber":       "E2E-" + slug,
		"availableQuantity": quantity,
		"receivedDate":      now,
		"createdBy":         seededBy,
	}
}

func couponDocument(c fixtures.TestCoupon, now time.Time) (bson.M, error) {
	value, err := money.ToDecimal128(c.DiscountValue)
	if err != nil {
		return nil, err
	}
	minimum, err := money.ToDecimal128(c.MinimumOrder)
	if err != nil {
		return nil, err
	}
	validUntil := now.Add(couponValidity)
	if c.Expired {
		validUntil = now.Add(-couponValidity)
	}
	return bson.M{
		"_id":           c.ID,
		"code":          c.Code,
		"discountType":  c.DiscountType,
		"discountValue": value,
		"minimumOrder":  minimum,
		"active":        !c.Expired,
		"validUntil":    validUntil,
		"createdBy":     seededBy,
		"createdDate":   now,
	}, nil
}

func orderDocument(o fixtures.TestOrder, now time.Time) (bson.M, error) {
	subtotal, err := money.ToDecimal128(o.Subtotal)
	if err != nil {
		return nil, err
	}
	tax, err := money.ToDecimal128(o.Tax)
	if err != nil {
		return nil, err
	}
	total, err := money.ToDecimal128(o.Total)
	if err != nil {
		return nil, err
	}
	items := make(bson.A, 0, len(o.Items))
	for _, it := range o.Items {
		unit, err := money.ToDecimal128(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, bson.M{
			"productSlug": it.ProductSlug,
			"quantity":    it.Quantity,
			"unitPrice":   unit,
		})
	}
	return bson.M{
		"_id":           o.ID,
		"_class":        orderClass,
		"userId":        o.UserID,
		"status":        o.Status,
		"paymentMethod": o.PaymentMethod,
		"items":         items,
		"subtotal":      subtotal,
		"tax":           tax,
		"total":         total,
		"shippingAddress": bson.M{
			"street":     o.ShippingAddress.Street,
			"city":       o.ShippingAddress.City,
			"state":      o.ShippingAddress.State,
			"postalCode": o.ShippingAddress.PostalCode,
			"country":    o.ShippingAddress.Country,
		},
		"createdBy":        seededBy,
		"createdDate":      now,
		"lastModifiedDate": now,
	}, nil
}

func bitcoinPaymentDocument(p fixtures.TestBitcoinPayment, now time.Time) (bson.M, error) {
	rate, err := money.ToDecimal128(p.BTCUSDRate)
	if err != nil {
		return nil, err
	}
	return bson.M{
		"_id":                p.ID,
		"orderId":            p.OrderID,
		"address":            p.Address,
		"amountExpectedSats": p.AmountExpectedSats,
		"amountReceivedSats": p.AmountReceivedSats,
		"confirmations":      p.Confirmations,
		// authored flags, trusted as written
		"underpaid":   p.Underpaid,
		"overpaid":    p.Overpaid,
		"btcUsdRate":  rate,
		"status":      p.Status,
		"createdBy":   seededBy,
		"createdDate": now,
	}, nil
}

func paymentConfigDocument(c fixtures.PaymentMethodConfiguration, now time.Time) bson.M {
	return bson.M{
		"_id":              c.ID,
		"method":           c.Method,
		"displayName":      c.DisplayName,
		"enabled":          c.Enabled,
		"displayOrder":     c.DisplayOrder,
		"lastModifiedBy":   seededBy,
		"lastModifiedDate": now,
	}
}
