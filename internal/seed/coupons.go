package seed

import (
	"context"
	"time"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// SeedCoupons plain-inserts coupons, deriving active and validUntil from
// the authored Expired flag: expired coupons get active=false and a
// validUntil strictly before the seeding timestamp, the rest active=true
// and a validUntil strictly after it.
func (s *Seeder) SeedCoupons(ctx context.Context, coupons []fixtures.TestCoupon) error {
	const op = "seed_coupons"
	if err := s.requireConn(op); err != nil {
		return err
	}
	if len(coupons) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(coupons))
	for _, c := range coupons {
		doc, err := couponDocument(c, now)
		if err != nil {
			return s.wrap(op, err)
		}
		docs = append(docs, doc)
	}
	if _, err := s.db.Collection(CollCoupons).InsertMany(ctx, docs); err != nil {
		return s.wrap(op, err)
	}
	s.log.Info("coupons seeded", logger.Op(op), logger.Count(len(coupons)))
	return nil
}
