package seed

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// SeedOrders upserts orders by id, expanding each fixture into the
// backend-shaped document: discriminator class, Decimal128 monetary fields,
// embedded shipping address. Monetary fields never pass through binary
// floating point on the way in.
func (s *Seeder) SeedOrders(ctx context.Context, orders []fixtures.TestOrder) error {
	const op = "seed_orders"
	if err := s.requireConn(op); err != nil {
		return err
	}
	coll := s.db.Collection(CollOrders)
	now := time.Now().UTC()
	for _, o := range orders {
		doc, err := orderDocument(o, now)
		if err != nil {
			return s.wrap(op, err)
		}
		id := doc["_id"]
		delete(doc, "_id")
		_, err = coll.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true))
		if err != nil {
			return s.wrap(op, err)
		}
	}
	s.log.Info("orders seeded", logger.Op(op), logger.Count(len(orders)))
	return nil
}

// UpdateOrderUserIDs rewrites orders owned by fixtureID to realID. When the
// two already match nothing is written; the returned count is the number of
// documents actually modified.
func (s *Seeder) UpdateOrderUserIDs(ctx context.Context, fixtureID, realID string) (int64, error) {
	const op = "update_order_user_ids"
	if err := s.requireConn(op); err != nil {
		return 0, err
	}
	if fixtureID == realID {
		s.log.Debug("order owner ids already match, skipping", logger.Op(op), logger.UserID(realID))
		return 0, nil
	}
	res, err := s.db.Collection(CollOrders).UpdateMany(ctx,
		bson.M{"userId": fixtureID},
		bson.M{"$set": bson.M{"userId": realID}})
	if err != nil {
		return 0, s.wrap(op, err)
	}
	s.log.Info("order owners reconciled", logger.Op(op),
		logger.String("fixture_id", fixtureID), logger.UserID(realID),
		logger.Int("modified", int(res.ModifiedCount)))
	return res.ModifiedCount, nil
}

// CountOrdersByUserID counts orders owned by a (reconciled) user id. Used
// by the bootstrap verification phase for diagnostics only.
func (s *Seeder) CountOrdersByUserID(ctx context.Context, userID string) (int64, error) {
	const op = "count_orders"
	if err := s.requireConn(op); err != nil {
		return 0, err
	}
	n, err := s.db.Collection(CollOrders).CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, s.wrap(op, err)
	}
	return n, nil
}
