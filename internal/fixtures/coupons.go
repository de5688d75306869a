package fixtures

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Coupon discount kinds.
const (
	DiscountPercent = "PERCENT"
	DiscountFixed   = "FIXED"
)

// TestCoupon is a discount rule. Expired is an explicit flag set at
// authoring time; the historical convention of marking expiry by putting
// "EXPIRED" in the code is kept as the default mapping (see NewTestCoupon),
// so existing codes keep their meaning.
type TestCoupon struct {
	ID            string
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	MinimumOrder  decimal.Decimal
	Expired       bool
}

// Clone returns a deep copy.
func (c TestCoupon) Clone() TestCoupon { return c }

// CodeMarksExpired reports whether a coupon code carries the "EXPIRED"
// marker (case-insensitive substring).
func CodeMarksExpired(code string) bool {
	return strings.Contains(strings.ToUpper(code), "EXPIRED")
}

// NewTestCoupon builds a coupon with Expired derived from the code marker.
func NewTestCoupon(id, code, discountType string, value, minimum decimal.Decimal) TestCoupon {
	return TestCoupon{
		ID:            id,
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		MinimumOrder:  minimum,
		Expired:       CodeMarksExpired(code),
	}
}

var coupons = []TestCoupon{
	NewTestCoupon("fixture-coupon-welcome", "WELCOME10", DiscountPercent,
		decimal.RequireFromString("10"), decimal.RequireFromString("25.00")),
	NewTestCoupon("fixture-coupon-bulk", "BULK20", DiscountPercent,
		decimal.RequireFromString("20"), decimal.RequireFromString("150.00")),
	NewTestCoupon("fixture-coupon-flat", "TAKE5OFF", DiscountFixed,
		decimal.RequireFromString("5.00"), decimal.RequireFromString("30.00")),
	NewTestCoupon("fixture-coupon-expired", "SUMMER-EXPIRED-15", DiscountPercent,
		decimal.RequireFromString("15"), decimal.RequireFromString("0")),
}

// Coupons returns every catalog coupon.
func Coupons() []TestCoupon {
	out := make([]TestCoupon, len(coupons))
	for i, c := range coupons {
		out[i] = c.Clone()
	}
	return out
}

// CouponByCode looks up a coupon by code.
func CouponByCode(code string) (TestCoupon, error) {
	for _, c := range coupons {
		if c.Code == code {
			return c.Clone(), nil
		}
	}
	return TestCoupon{}, fmt.Errorf("fixtures: no coupon with code %q", code)
}

// ExpiredCoupon returns the coupon authored as expired.
func ExpiredCoupon() TestCoupon {
	for _, c := range coupons {
		if c.Expired {
			return c.Clone()
		}
	}
	panic("fixtures: catalog has no expired coupon")
}
