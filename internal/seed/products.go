package seed

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// SeedProducts upserts products keyed by slug. The fixture id is only a
// suggestion applied on first insert; a product that already exists (from a
// prior run, or created through the admin UI) keeps its id, and the rest of
// the fields are refreshed.
func (s *Seeder) SeedProducts(ctx context.Context, products []fixtures.TestProduct) error {
	const op = "seed_products"
	if err := s.requireConn(op); err != nil {
		return err
	}
	coll := s.db.Collection(CollProducts)
	for _, p := range products {
		fields, err := productFields(p)
		if err != nil {
			return s.wrap(op, err)
		}
		_, err = coll.UpdateOne(ctx,
			bson.M{"slug": p.Slug},
			bson.M{
				"$set":         fields,
				"$setOnInsert": bson.M{"_id": p.ID, "createdBy": seededBy},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			return s.wrap(op, err)
		}
		s.log.Info("product seeded", logger.Op(op), logger.Slug(p.Slug))
	}
	return nil
}

// SeedInventoryBatches realizes each product's desired inventory as batch
// documents. The storefront sums batches to compute available stock, so a
// product without batches is visible but out of stock.
//
// Two phases: resolve each product's persisted id by slug (a product never
// seeded is skipped with a warning), then delete that product's existing
// batches and insert fresh ones. Batch identity derives from the persisted
// product id, which is only known here at call time; delete-then-insert is
// the simple correct move where an upsert key would have to be computed
// from a lookup anyway.
//
// Products with zero inventory get no batch at all: out of stock means zero
// batches, not a zero-quantity batch.
func (s *Seeder) SeedInventoryBatches(ctx context.Context, products []fixtures.TestProduct) error {
	const op = "seed_inventory_batches"
	if err := s.requireConn(op); err != nil {
		return err
	}
	prodColl := s.db.Collection(CollProducts)
	batchColl := s.db.Collection(CollBatches)
	now := time.Now().UTC()

	created := 0
	for _, p := range products {
		var existing struct {
			ID string `bson:"_id"`
		}
		err := prodColl.FindOne(ctx, bson.M{"slug": p.Slug}).Decode(&existing)
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.log.Warn("product not in database, skipping batch", logger.Op(op), logger.Slug(p.Slug))
			continue
		}
		if err != nil {
			return s.wrap(op, err)
		}

		if _, err := batchColl.DeleteMany(ctx, bson.M{"productId": existing.ID}); err != nil {
			return s.wrap(op, err)
		}
		if p.Inventory == 0 {
			continue
		}
		if _, err := batchColl.InsertOne(ctx, batchDocument(existing.ID, p.Slug, p.Inventory, now)); err != nil {
			return s.wrap(op, err)
		}
		created++
		s.log.Info("inventory batch seeded", logger.Op(op), logger.Slug(p.Slug),
			logger.String("product_id", existing.ID), logger.Int("quantity", p.Inventory))
	}
	s.log.Info("inventory batches done", logger.Op(op), logger.Count(created))
	return nil
}
