// internal/app/store/mongostore/ngos.go
package mongostore

import (
	"context"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

func (s *Store) GetNGO(ctx context.Context, id int64) (models.NGO, error) {
	var n models.NGO
	err := s.ngos.FindOne(ctx, bson.M{"id": id}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return models.NGO{}, storage.ErrNotFound
	}
	if err != nil {
		return models.NGO{}, err
	}
	return n, nil
}

// requireNGO verifies a weak reference resolves before a write proceeds.
func (s *Store) requireNGO(ctx context.Context, id int64) error {
	err := s.ngos.FindOne(ctx, bson.M{"id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return storage.ErrNGONotFound
	}
	return err
}

func (s *Store) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	cur, err := s.ngos.Find(ctx, bson.M{})
	return all[models.NGO](ctx, cur, err)
}

func (s *Store) ListNGOsByCause(ctx context.Context, cause string) ([]models.NGO, error) {
	cur, err := s.ngos.Find(ctx, bson.M{"cause_ci": text.Fold(cause)})
	return all[models.NGO](ctx, cur, err)
}

func (s *Store) CreateNGO(ctx context.Context, in models.NewNGO) (models.NGO, error) {
	id, err := s.nextID(ctx, "ngos")
	if err != nil {
		return models.NGO{}, err
	}
	n := models.NGO{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Cause:       in.Cause,
		CauseCI:     text.Fold(in.Cause),
		Location:    in.Location,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Website:     in.Website,
		Logo:        in.Logo,
	}
	if _, err := s.ngos.InsertOne(ctx, n); err != nil {
		return models.NGO{}, err
	}
	return n, nil
}

func (s *Store) UpdateNGO(ctx context.Context, id int64, patch models.NGOPatch) (models.NGO, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Cause != nil {
		set["cause"] = *patch.Cause
		set["cause_ci"] = text.Fold(*patch.Cause)
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.PhoneNumber != nil {
		set["phone_number"] = *patch.PhoneNumber
	}
	if patch.Website != nil {
		set["website"] = *patch.Website
	}
	if patch.Logo != nil {
		set["logo"] = *patch.Logo
	}
	if len(set) == 0 {
		return s.GetNGO(ctx, id)
	}

	var n models.NGO
	err := s.ngos.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return models.NGO{}, storage.ErrNotFound
	}
	if err != nil {
		return models.NGO{}, err
	}
	return n, nil
}

func (s *Store) CountNGOs(ctx context.Context) (int64, error) {
	return s.ngos.CountDocuments(ctx, bson.M{})
}
