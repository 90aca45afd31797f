// internal/app/store/mongostore/users.go
package mongostore

import (
	"context"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetUserByUsername resolves a username case-insensitively via the stored
// folded field. Folding at write time keeps the lookup an exact indexed
// match, so usernames containing regex metacharacters need no escaping.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, bson.M{"username_ci": text.Fold(username)})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, bson.M{"email_ci": text.Fold(email)})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, in models.NewUser) (models.User, error) {
	if in.NGOID != nil {
		if err := s.requireNGO(ctx, *in.NGOID); err != nil {
			return models.User{}, err
		}
	}

	id, err := s.nextID(ctx, "users")
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		ID:          id,
		Username:    in.Username,
		UsernameCI:  text.Fold(in.Username),
		Password:    in.Password,
		Email:       in.Email,
		EmailCI:     text.Fold(in.Email),
		FullName:    in.FullName,
		UserType:    in.UserType,
		PhoneNumber: in.PhoneNumber,
		Location:    in.Location,
		Bio:         in.Bio,
		Interests:   in.Interests,
		NGOID:       in.NGOID,
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, s.classifyUserDup(ctx, u.UsernameCI)
		}
		return models.User{}, err
	}
	return u, nil
}

// classifyUserDup decides which unique index rejected an insert. The unique
// constraint lives on the collection, so by the time we get here one of the
// two folded fields is definitely taken.
func (s *Store) classifyUserDup(ctx context.Context, usernameCI string) error {
	err := s.users.FindOne(ctx, bson.M{"username_ci": usernameCI}).Err()
	if err == nil {
		return storage.ErrDuplicateUsername
	}
	if err == mongo.ErrNoDocuments {
		return storage.ErrDuplicateEmail
	}
	return err
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	set := bson.M{}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		set["phone_number"] = *patch.PhoneNumber
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Interests != nil {
		set["interests"] = patch.Interests
	}
	if patch.NGOID != nil {
		if err := s.requireNGO(ctx, *patch.NGOID); err != nil {
			return models.User{}, err
		}
		set["ngo_id"] = *patch.NGOID
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}

	var u models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) ListVolunteers(ctx context.Context) ([]models.User, error) {
	cur, err := s.users.Find(ctx, bson.M{"user_type": models.UserTypeVolunteer})
	return all[models.User](ctx, cur, err)
}

func (s *Store) ListRecruiters(ctx context.Context) ([]models.User, error) {
	cur, err := s.users.Find(ctx, bson.M{"user_type": models.UserTypeRecruiter})
	return all[models.User](ctx, cur, err)
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{})
}
