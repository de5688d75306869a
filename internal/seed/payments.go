package seed

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// SeedBitcoinPayments upserts payments by id. Amounts are satoshi integers
// and the BTC/USD rate is Decimal128; the underpaid/overpaid flags are
// persisted exactly as authored.
func (s *Seeder) SeedBitcoinPayments(ctx context.Context, payments []fixtures.TestBitcoinPayment) error {
	const op = "seed_bitcoin_payments"
	if err := s.requireConn(op); err != nil {
		return err
	}
	coll := s.db.Collection(CollPayments)
	now := time.Now().UTC()
	for _, p := range payments {
		doc, err := bitcoinPaymentDocument(p, now)
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
	s.log.Info("bitcoin payments seeded", logger.Op(op), logger.Count(len(payments)))
	return nil
}

// SeedPaymentMethodConfigurations upserts the fixed set of five payment
// options. No parameters on purpose: the set and its _id strings never
// vary, and calling this any number of times converges on the same state.
func (s *Seeder) SeedPaymentMethodConfigurations(ctx context.Context) error {
	const op = "seed_payment_configs"
	if err := s.requireConn(op); err != nil {
		return err
	}
	coll := s.db.Collection(CollPaymentConfigs)
	now := time.Now().UTC()
	configs := fixtures.PaymentMethodConfigurations()
	for _, c := range configs {
		doc := paymentConfigDocument(c, now)
		id := doc["_id"]
		delete(doc, "_id")
		_, err := coll.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true))
		if err != nil {
			return s.wrap(op, err)
		}
	}
	s.log.Info("payment method configurations seeded", logger.Op(op), logger.Count(len(configs)))
	return nil
}
