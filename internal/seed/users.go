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

// SeedUsers plain-inserts users. Callers run this against a freshly reset
// collection only; id collisions are an error, not something to paper over.
func (s *Seeder) SeedUsers(ctx context.Context, users []fixtures.TestUser) error {
	const op = "seed_users"
	if err := s.requireConn(op); err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		doc, err := userDocument(u, now)
		if err != nil {
			return s.wrap(op, err)
		}
		docs = append(docs, doc)
	}
	if _, err := s.db.Collection(CollUsers).InsertMany(ctx, docs); err != nil {
		return s.wrap(op, err)
	}
	s.log.Info("users seeded", logger.Op(op), logger.Count(len(users)))
	return nil
}

// SeedSpecialTestUsers upserts key-bearing users by id. createdDate and
// createdBy survive re-seeding ($setOnInsert); everything mutable,
// including the keys and lastModifiedDate, is refreshed on every call so
// bootstrap retries never hit duplicate-key errors.
func (s *Seeder) SeedSpecialTestUsers(ctx context.Context, users []fixtures.TestUser) error {
	const op = "seed_special_users"
	if err := s.requireConn(op); err != nil {
		return err
	}
	now := time.Now().UTC()
	coll := s.db.Collection(CollUsers)
	for _, u := range users {
		doc, err := userDocument(u, now)
		if err != nil {
			return s.wrap(op, err)
		}
		id := doc["_id"]
		delete(doc, "_id")
		setOnInsert := bson.M{
			"createdBy":   doc["createdBy"],
			"createdDate": doc["createdDate"],
		}
		delete(doc, "createdBy")
		delete(doc, "createdDate")
		// a consumed key must not linger from a previous run
		unset := bson.M{}
		if u.ActivationKey == "" {
			unset["activationKey"] = ""
		}
		if u.ResetKey == "" {
			unset["resetKey"] = ""
			unset["resetDate"] = ""
		}
		update := bson.M{"$set": doc, "$setOnInsert": setOnInsert}
		if len(unset) > 0 {
			update["$unset"] = unset
		}
		if _, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true)); err != nil {
			return s.wrap(op, err)
		}
		s.log.Info("special user seeded", logger.Op(op), logger.Email(u.Email))
	}
	return nil
}

// UserActivation describes one activation to apply.
type UserActivation struct {
	Email       string
	Authorities []string
}

// ActivateAndSetupUsers activates registered accounts directly in the
// database and replaces their authority list wholesale, clearing any
// activation key. Test accounts skip the email-confirmation flow entirely.
//
// Activation is best-effort per user: a missing account is logged and
// skipped, never fatal to the batch.
func (s *Seeder) ActivateAndSetupUsers(ctx context.Context, activations []UserActivation) error {
	const op = "activate_users"
	if err := s.requireConn(op); err != nil {
		return err
	}
	coll := s.db.Collection(CollUsers)
	now := time.Now().UTC()
	for _, a := range activations {
		res, err := coll.UpdateOne(ctx,
			bson.M{"email": a.Email},
			bson.M{
				"$set": bson.M{
					"activated":        true,
					"authorities":      a.Authorities,
					"lastModifiedBy":   seededBy,
					"lastModifiedDate": now,
				},
				"$unset": bson.M{"activationKey": ""},
			})
		if err != nil {
			return s.wrap(op, err)
		}
		if res.MatchedCount == 0 {
			s.log.Warn("user not found for activation, skipping", logger.Op(op), logger.Email(a.Email))
			continue
		}
		s.log.Info("user activated", logger.Op(op), logger.Email(a.Email), logger.Any("authorities", a.Authorities))
	}
	return nil
}

// ErrUserNotFound reports a GetUserIDByEmail miss.
var ErrUserNotFound = errors.New("user not found")

// GetUserIDByEmail returns the persisted _id for an email, which after
// registration is the backend-assigned id and not the fixture's.
func (s *Seeder) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	const op = "get_user_id"
	if err := s.requireConn(op); err != nil {
		return "", err
	}
	var doc struct {
		ID string `bson:"_id"`
	}
	err := s.db.Collection(CollUsers).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", s.wrap(op, ErrUserNotFound)
	}
	if err != nil {
		return "", s.wrap(op, err)
	}
	return doc.ID, nil
}
