// internal/app/store/mongostore/indexes.go
package mongostore

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureIndexes is called once at startup and is idempotent. The index set
mirrors the common filter predicates: unique folded username/email for users,
cause filtering for NGOs, ownership filters for opportunities, applications
and suggestions, plus an "id" index per collection since every Get/Update
resolves the integer surrogate key. Problems are aggregated so startup can
fail fast with everything that is wrong.
*/
func (s *Store) EnsureIndexes(ctx context.Context) error {
	var problems []string

	ensure := func(c *mongo.Collection, idx []mongo.IndexModel) {
		if _, err := c.Indexes().CreateMany(ctx, idx); err != nil {
			problems = append(problems, c.Name()+": "+err.Error())
		}
	}

	ensure(s.users, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_users_id"),
		},
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_username_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_email_ci").SetUnique(true),
		},
	})

	ensure(s.ngos, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_ngos_id"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_ngos_name"),
		},
		{
			Keys:    bson.D{{Key: "cause_ci", Value: 1}},
			Options: options.Index().SetName("idx_ngos_cause_ci"),
		},
	})

	ensure(s.opportunities, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_opportunities_id"),
		},
		{
			Keys:    bson.D{{Key: "ngo_id", Value: 1}},
			Options: options.Index().SetName("idx_opportunities_ngo"),
		},
	})

	ensure(s.applications, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_applications_id"),
		},
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}},
			Options: options.Index().SetName("idx_applications_volunteer"),
		},
		{
			Keys:    bson.D{{Key: "ngo_id", Value: 1}},
			Options: options.Index().SetName("idx_applications_ngo"),
		},
		{
			Keys:    bson.D{{Key: "opportunity_id", Value: 1}},
			Options: options.Index().SetName("idx_applications_opportunity"),
		},
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}, {Key: "opportunity_id", Value: 1}},
			Options: options.Index().SetName("uniq_applications_volunteer_opportunity").SetUnique(true),
		},
	})

	ensure(s.suggestions, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_suggestions_id"),
		},
		{
			Keys:    bson.D{{Key: "ngo_id", Value: 1}},
			Options: options.Index().SetName("idx_suggestions_ngo"),
		},
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}},
			Options: options.Index().SetName("idx_suggestions_volunteer"),
		},
	})

	// Seed id counters from existing data so databases that predate the
	// counters collection keep their sequences.
	for entity, c := range map[string]*mongo.Collection{
		"users":         s.users,
		"ngos":          s.ngos,
		"opportunities": s.opportunities,
		"applications":  s.applications,
		"suggestions":   s.suggestions,
	} {
		if err := s.seedCounter(ctx, entity, c); err != nil {
			problems = append(problems, "counter "+entity+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
