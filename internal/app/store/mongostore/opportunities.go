// internal/app/store/mongostore/opportunities.go
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// notDeleted is the list-query filter clause excluding soft-deleted records.
// $ne tolerates documents written before the deleted flag existed.
var notDeleted = bson.M{"$ne": true}

func (s *Store) GetOpportunity(ctx context.Context, id int64) (models.Opportunity, error) {
	var o models.Opportunity
	err := s.opportunities.FindOne(ctx, bson.M{"id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return models.Opportunity{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

func (s *Store) ListOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	cur, err := s.opportunities.Find(ctx, bson.M{"deleted": notDeleted})
	return all[models.Opportunity](ctx, cur, err)
}

func (s *Store) ListOpportunitiesByNGO(ctx context.Context, ngoID int64) ([]models.Opportunity, error) {
	cur, err := s.opportunities.Find(ctx, bson.M{"ngo_id": ngoID, "deleted": notDeleted})
	return all[models.Opportunity](ctx, cur, err)
}

// ListOpportunitiesByCause filters indirectly: first the NGOs whose cause
// matches case-insensitively, then their opportunities.
func (s *Store) ListOpportunitiesByCause(ctx context.Context, cause string) ([]models.Opportunity, error) {
	ngos, err := s.ListNGOsByCause(ctx, cause)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(ngos))
	for _, n := range ngos {
		ids = append(ids, n.ID)
	}
	cur, err := s.opportunities.Find(ctx, bson.M{
		"ngo_id":  bson.M{"$in": ids},
		"deleted": notDeleted,
	})
	return all[models.Opportunity](ctx, cur, err)
}

func (s *Store) CreateOpportunity(ctx context.Context, in models.NewOpportunity) (models.Opportunity, error) {
	if err := s.requireNGO(ctx, in.NGOID); err != nil {
		return models.Opportunity{}, err
	}

	id, err := s.nextID(ctx, "opportunities")
	if err != nil {
		return models.Opportunity{}, err
	}
	openings := in.Openings
	if openings == 0 {
		openings = 1
	}
	o := models.Opportunity{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		NGOID:       in.NGOID,
		Location:    in.Location,
		Remote:      in.Remote,
		Skills:      in.Skills,
		Commitment:  in.Commitment,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Openings:    openings,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.opportunities.InsertOne(ctx, o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

func (s *Store) UpdateOpportunity(ctx context.Context, id int64, patch models.OpportunityPatch) (models.Opportunity, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Remote != nil {
		set["remote"] = *patch.Remote
	}
	if patch.Skills != nil {
		set["skills"] = patch.Skills
	}
	if patch.Commitment != nil {
		set["commitment"] = *patch.Commitment
	}
	if patch.StartDate != nil {
		set["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["end_date"] = *patch.EndDate
	}
	if patch.Openings != nil {
		set["openings"] = *patch.Openings
	}
	if patch.Deleted != nil {
		set["deleted"] = *patch.Deleted
	}
	if len(set) == 0 {
		return s.GetOpportunity(ctx, id)
	}

	var o models.Opportunity
	err := s.opportunities.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return models.Opportunity{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}
