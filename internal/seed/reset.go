package seed

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// Two lists govern ResetDatabase. preserveCollections survive a reset: the
// product catalog (re-upserted in place, never dropped), the migration
// tracker's two collections, and the email templates the backend renders
// from. forceDropCollections are dropped unconditionally; they would
// otherwise be easy to miscategorize when auditing this file, so they are
// named even though "not preserved" already covers them. Anything in
// neither list is dropped.
var preserveCollections = map[string]bool{
	CollProducts:       true,
	"mongockChangeLog": true,
	"mongockLock":      true,
	"email_template":   true,
}

var forceDropCollections = map[string]bool{
	CollBatches:        true,
	CollPaymentConfigs: true,
	CollCarts:          true,
	CollPreferences:    true,
}

// ResetDatabase drops every collection except the preserve-list.
func (s *Seeder) ResetDatabase(ctx context.Context) error {
	const op = "reset_database"
	if err := s.requireConn(op); err != nil {
		return err
	}
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return s.wrap(op, err)
	}
	dropped := 0
	for _, name := range names {
		if preserveCollections[name] && !forceDropCollections[name] {
			s.log.Debug("preserving collection", logger.Op(op), logger.Collection(name))
			continue
		}
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return s.wrap(op, err)
		}
		dropped++
		s.log.Info("collection dropped", logger.Op(op), logger.Collection(name))
	}
	s.log.Info("database reset", logger.Op(op), logger.Count(dropped))
	return nil
}

// ResetCollection drops one named collection. Dropping a collection that
// does not exist is a no-op in mongo and here too.
func (s *Seeder) ResetCollection(ctx context.Context, name string) error {
	const op = "reset_collection"
	if err := s.requireConn(op); err != nil {
		return err
	}
	if err := s.db.Collection(name).Drop(ctx); err != nil {
		return s.wrap(op, err)
	}
	s.log.Info("collection dropped", logger.Op(op), logger.Collection(name))
	return nil
}
