// Package bootstrap produces a ready-to-test storefront environment exactly
// once before the e2e suite runs. Phases run strictly in order, nothing
// concurrent.
package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/backend"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/config"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/seed"
)

// interRegisterDelay spaces out registration calls so the backend's
// first-request defense never sees a burst from a cold host.
const interRegisterDelay = 500 * time.Millisecond

// Orchestrator runs the one-time environment bootstrap. Construct with New,
// call Run once, let it go out of scope; it holds no global state.
type Orchestrator struct {
	cfg     *config.Config
	seeder  *seed.Seeder
	backend *backend.Client
	log     *zap.Logger
}

// New wires an orchestrator from config. The seeder and backend client are
// owned by the orchestrator for its whole lifetime.
func New(cfg *config.Config) *Orchestrator {
	runID := uuid.NewString()
	return &Orchestrator{
		cfg:     cfg,
		seeder:  seed.New(cfg.Mongo.URI, cfg.Mongo.Database),
		backend: backend.New(cfg.Backend.URL, cfg.Frontend.URL),
		log:     logger.Named("bootstrap").With(logger.RunID(runID)),
	}
}

// Run executes all phases. A partial failure is logged, not returned: the
// suite runs against whatever environment exists and fails loudly itself if
// data it needs is missing. The database connection is always released.
func (o *Orchestrator) Run(ctx context.Context) {
	start := time.Now()
	defer func() {
		// release regardless of how far we got
		if err := o.seeder.Disconnect(context.Background()); err != nil {
			o.log.Warn("disconnect failed", logger.Err(err))
		}
	}()

	if err := o.run(ctx); err != nil {
		o.log.Error("bootstrap incomplete, tests may fail on missing data",
			logger.Err(err), logger.Duration(time.Since(start)))
		return
	}
	o.log.Info("bootstrap complete", logger.Duration(time.Since(start)))
}

func (o *Orchestrator) run(ctx context.Context) error {
	// 1. connect; the only phase whose failure aborts everything
	if err := o.seeder.Connect(ctx); err != nil {
		return err
	}

	// 2. reset to a clean state
	if err := o.seeder.ResetDatabase(ctx); err != nil {
		return err
	}

	// 3. warmup: absorb the security filter's reaction to the first request
	if err := o.backend.Health(ctx); err != nil {
		o.log.Warn("health warmup failed (continuing)", logger.Err(err))
	}

	// 4. register fixture users through the public endpoint
	o.registerUsers(ctx)

	// 5. activate + roles directly in the database, skipping email confirm
	if err := o.activateUsers(ctx); err != nil {
		return err
	}

	// 6. special key-bearing users bypass registration entirely
	if err := o.seeder.SeedSpecialTestUsers(ctx, fixtures.SpecialUsers()); err != nil {
		return err
	}

	// 7. catalog and history, strictly products before batches
	if err := o.seedCatalog(ctx); err != nil {
		return err
	}

	// 8. rewrite order ownership to the backend-assigned user ids
	owners := o.reconcileOrderOwners(ctx)

	// 9. diagnostic read-back, never gating
	o.verifyOrders(ctx, owners)

	// 10. cache invalidation last: the backend may have cached a product
	// read before its batches existed
	o.invalidateCaches(ctx)

	return nil
}

func (o *Orchestrator) registerUsers(ctx context.Context) {
	users := fixtures.RegisterableUsers()
	for i, u := range users {
		if err := o.backend.RegisterUser(ctx, u); err != nil {
			// non-blocking: activation will warn again if the account is
			// really missing, and only specs needing this user will fail
			o.log.Warn("registration failed (continuing)", logger.Email(u.Email), logger.Err(err))
		} else {
			o.log.Info("user registered", logger.Email(u.Email))
		}
		if i < len(users)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interRegisterDelay):
			}
		}
	}
}

func (o *Orchestrator) activateUsers(ctx context.Context) error {
	users := fixtures.RegisterableUsers()
	activations := make([]seed.UserActivation, 0, len(users))
	for _, u := range users {
		activations = append(activations, seed.UserActivation{
			Email:       u.Email,
			Authorities: u.Authorities,
		})
	}
	return o.seeder.ActivateAndSetupUsers(ctx, activations)
}

func (o *Orchestrator) seedCatalog(ctx context.Context) error {
	products := fixtures.Products()
	if err := o.seeder.SeedProducts(ctx, products); err != nil {
		return err
	}
	if err := o.seeder.SeedInventoryBatches(ctx, products); err != nil {
		return err
	}
	if err := o.seeder.SeedCoupons(ctx, fixtures.Coupons()); err != nil {
		return err
	}
	if err := o.seeder.SeedOrders(ctx, fixtures.Orders()); err != nil {
		return err
	}
	if err := o.seeder.SeedBitcoinPayments(ctx, fixtures.BitcoinPayments()); err != nil {
		return err
	}
	return o.seeder.SeedPaymentMethodConfigurations(ctx)
}

// reconcileOrderOwners maps each order-owning email to its backend-assigned
// id and rewrites the seeded orders. Returns email→real-id for the verify
// phase.
func (o *Orchestrator) reconcileOrderOwners(ctx context.Context) map[string]string {
	real := make(map[string]string)
	for email, fixtureID := range fixtures.OrderOwners() {
		realID, err := o.seeder.GetUserIDByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, seed.ErrUserNotFound) {
				o.log.Warn("order owner not in database, skipping reconciliation", logger.Email(email))
			} else {
				o.log.Warn("order owner lookup failed, skipping reconciliation",
					logger.Email(email), logger.Err(err))
			}
			continue
		}
		real[email] = realID
		if _, err := o.seeder.UpdateOrderUserIDs(ctx, fixtureID, realID); err != nil {
			o.log.Warn("order reconciliation failed", logger.Email(email), logger.Err(err))
		}
	}
	return real
}

func (o *Orchestrator) verifyOrders(ctx context.Context, owners map[string]string) {
	for email, id := range owners {
		n, err := o.seeder.CountOrdersByUserID(ctx, id)
		if err != nil {
			o.log.Warn("order count failed", logger.Email(email), logger.Err(err))
			continue
		}
		// zero is informational; some owners legitimately start empty
		o.log.Info("order count", logger.Email(email), logger.UserID(id), logger.Int("orders", int(n)))
	}
}

func (o *Orchestrator) invalidateCaches(ctx context.Context) {
	admin := fixtures.AdminUser()
	if _, err := o.backend.Authenticate(ctx, admin.Login, admin.Password); err != nil {
		o.log.Warn("ADMIN LOGIN FAILED, caches not invalidated; stale reads likely",
			logger.Email(admin.Email), logger.Err(err))
		return
	}
	if err := o.backend.ClearProductCache(ctx); err != nil {
		o.log.Warn("product cache clear failed (continuing)", logger.Err(err))
	}
	if err := o.backend.ClearUserCache(ctx); err != nil {
		o.log.Warn("user cache clear failed (continuing)", logger.Err(err))
	}
	if err := o.backend.RefreshPaymentMethodConfigurations(ctx); err != nil {
		o.log.Warn("payment config refresh failed (continuing)", logger.Err(err))
	}
}
