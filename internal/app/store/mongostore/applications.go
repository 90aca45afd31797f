// internal/app/store/mongostore/applications.go
package mongostore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

func (s *Store) GetApplication(ctx context.Context, id int64) (models.Application, error) {
	var a models.Application
	err := s.applications.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Application{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Application{}, err
	}
	return a, nil
}

func (s *Store) ListApplicationsByVolunteer(ctx context.Context, volunteerID int64) ([]models.Application, error) {
	cur, err := s.applications.Find(ctx, bson.M{"volunteer_id": volunteerID})
	return all[models.Application](ctx, cur, err)
}

func (s *Store) ListApplicationsByNGO(ctx context.Context, ngoID int64) ([]models.Application, error) {
	cur, err := s.applications.Find(ctx, bson.M{"ngo_id": ngoID})
	return all[models.Application](ctx, cur, err)
}

func (s *Store) ListApplicationsByOpportunity(ctx context.Context, opportunityID int64) ([]models.Application, error) {
	cur, err := s.applications.Find(ctx, bson.M{"opportunity_id": opportunityID})
	return all[models.Application](ctx, cur, err)
}

// CreateApplication captures the opportunity's owning NGO as the denormalized
// ngo_id and rejects duplicates per (volunteer, opportunity). The pre-check
// catches the common case; the unique compound index closes the race between
// concurrent creates.
func (s *Store) CreateApplication(ctx context.Context, in models.NewApplication) (models.Application, error) {
	opp, err := s.applicationTarget(ctx, in.OpportunityID)
	if err != nil {
		return models.Application{}, err
	}

	n, err := s.applications.CountDocuments(ctx, bson.M{
		"volunteer_id":   in.VolunteerID,
		"opportunity_id": in.OpportunityID,
	})
	if err != nil {
		return models.Application{}, err
	}
	if n > 0 {
		return models.Application{}, storage.ErrDuplicateApplication
	}

	id, err := s.nextID(ctx, "applications")
	if err != nil {
		return models.Application{}, err
	}
	a := models.Application{
		ID:            id,
		VolunteerID:   in.VolunteerID,
		OpportunityID: in.OpportunityID,
		NGOID:         opp.NGOID,
		Status:        models.ApplicationPending,
		Message:       in.Message,
		Resume:        in.Resume,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.applications.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Application{}, storage.ErrDuplicateApplication
		}
		return models.Application{}, err
	}
	return a, nil
}

// applicationTarget loads an opportunity that can still accept
// applications: it must exist and must not be soft-deleted.
func (s *Store) applicationTarget(ctx context.Context, opportunityID int64) (models.Opportunity, error) {
	opp, err := s.GetOpportunity(ctx, opportunityID)
	if err == storage.ErrNotFound {
		return models.Opportunity{}, storage.ErrOpportunityUnavailable
	}
	if err != nil {
		return models.Opportunity{}, err
	}
	if opp.Deleted {
		return models.Opportunity{}, storage.ErrOpportunityUnavailable
	}
	return opp, nil
}

func (s *Store) UpdateApplication(ctx context.Context, id int64, patch models.ApplicationPatch) (models.Application, error) {
	set := bson.M{}
	if patch.Status != nil {
		next := *patch.Status
		if !models.ValidApplicationStatus(next) {
			return models.Application{}, storage.ErrInvalidStatus
		}
		cur, err := s.GetApplication(ctx, id)
		if err != nil {
			return models.Application{}, err
		}
		if cur.Status != models.ApplicationPending && next != cur.Status {
			return models.Application{}, storage.ErrStatusFinal
		}
		set["status"] = next
	}
	if patch.Message != nil {
		set["message"] = *patch.Message
	}
	if patch.Resume != nil {
		set["resume"] = *patch.Resume
	}
	if len(set) == 0 {
		return s.GetApplication(ctx, id)
	}

	var a models.Application
	err := s.applications.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Application{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Application{}, err
	}
	return a, nil
}
