// Package seed brings the storefront database into the state the e2e suite
// expects: one idempotent operation per entity collection, destructive
// resets with a preserve-list, and the id-reconciliation helpers the
// bootstrap orchestrator runs after user registration.
package seed

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// Collection names as the backend owns them.
const (
	CollUsers          = "jhi_user"
	CollProducts       = "product"
	CollBatches        = "inventory_batch"
	CollCoupons        = "coupon"
	CollOrders         = "customer_order"
	CollPayments       = "bitcoin_payment"
	CollPaymentConfigs = "payment_method_configuration"
	CollCarts          = "shopping_cart"
	CollPreferences    = "user_preference"
)

// Seeder owns the single database connection for the duration of a setup
// run. It is not safe for concurrent use and is not meant to be: bootstrap
// is strictly sequential, and test workers only read what it wrote.
//
// Construct one per bootstrap invocation and Disconnect it when done; there
// is deliberately no package-level instance.
type Seeder struct {
	uri    string
	dbName string
	log    *zap.Logger

	client *mongo.Client
	db     *mongo.Database
}

// New builds an unconnected Seeder.
func New(uri, dbName string) *Seeder {
	return &Seeder{
		uri:    uri,
		dbName: dbName,
		log:    logger.Named("seeder"),
	}
}

// Connect establishes the shared connection. No-op when already connected.
func (s *Seeder) Connect(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return s.wrap("connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return s.wrap("connect", err)
	}
	s.client = client
	s.db = client.Database(s.dbName)
	s.log.Info("connected", logger.String("database", s.dbName))
	return nil
}

// Disconnect releases the connection. Safe to call when Connect never
// succeeded, and after a prior Disconnect.
func (s *Seeder) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	if err != nil {
		return s.wrap("disconnect", err)
	}
	return nil
}

// Fixtures bundles everything SeedAll persists.
type Fixtures struct {
	Users           []fixtures.TestUser
	Products        []fixtures.TestProduct
	Coupons         []fixtures.TestCoupon
	Orders          []fixtures.TestOrder
	BitcoinPayments []fixtures.TestBitcoinPayment
}

// SeedAll runs every per-collection operation in dependency order: users,
// products, then inventory batches (which need the products' persisted
// ids), then coupons, orders, bitcoin payments and payment configurations.
// Only the product→batch edge is a real dependency; the rest of the order
// is fixed for determinism.
func (s *Seeder) SeedAll(ctx context.Context, fx Fixtures) error {
	if err := s.SeedUsers(ctx, fx.Users); err != nil {
		return err
	}
	if err := s.SeedProducts(ctx, fx.Products); err != nil {
		return err
	}
	if err := s.SeedInventoryBatches(ctx, fx.Products); err != nil {
		return err
	}
	if err := s.SeedCoupons(ctx, fx.Coupons); err != nil {
		return err
	}
	if err := s.SeedOrders(ctx, fx.Orders); err != nil {
		return err
	}
	if err := s.SeedBitcoinPayments(ctx, fx.BitcoinPayments); err != nil {
		return err
	}
	return s.SeedPaymentMethodConfigurations(ctx)
}

// wrap tags every escaping error with the component and operation so a
// failed step is identifiable in the orchestrator's top-level log line.
func (s *Seeder) wrap(op string, err error) error {
	return fmt.Errorf("seeder %s: %w", op, err)
}

// requireConn guards operations called before Connect.
func (s *Seeder) requireConn(op string) error {
	if s.db == nil {
		return s.wrap(op, fmt.Errorf("not connected"))
	}
	return nil
}
