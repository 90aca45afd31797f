// internal/app/store/mongostore/suggestions.go
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

func (s *Store) GetSuggestion(ctx context.Context, id int64) (models.Suggestion, error) {
	var sg models.Suggestion
	err := s.suggestions.FindOne(ctx, bson.M{"id": id}).Decode(&sg)
	if err == mongo.ErrNoDocuments {
		return models.Suggestion{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Suggestion{}, err
	}
	return sg, nil
}

func (s *Store) ListSuggestionsByVolunteer(ctx context.Context, volunteerID int64) ([]models.Suggestion, error) {
	cur, err := s.suggestions.Find(ctx, bson.M{"volunteer_id": volunteerID})
	return all[models.Suggestion](ctx, cur, err)
}

func (s *Store) ListSuggestionsByNGO(ctx context.Context, ngoID int64) ([]models.Suggestion, error) {
	cur, err := s.suggestions.Find(ctx, bson.M{"ngo_id": ngoID})
	return all[models.Suggestion](ctx, cur, err)
}

func (s *Store) CreateSuggestion(ctx context.Context, in models.NewSuggestion) (models.Suggestion, error) {
	if err := s.requireNGO(ctx, in.NGOID); err != nil {
		return models.Suggestion{}, err
	}

	id, err := s.nextID(ctx, "suggestions")
	if err != nil {
		return models.Suggestion{}, err
	}
	sg := models.Suggestion{
		ID:          id,
		VolunteerID: in.VolunteerID,
		NGOID:       in.NGOID,
		Content:     in.Content,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.suggestions.InsertOne(ctx, sg); err != nil {
		return models.Suggestion{}, err
	}
	return sg, nil
}
