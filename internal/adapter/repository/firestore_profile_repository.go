package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

const profilesCollection = "profiles"

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	doc, err := r.client.Collection(profilesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Profile", err)
		}
		return nil, errors.Internal("Failed to get profile", err)
	}

	var record profileRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}
	record.ID = doc.Ref.ID

	profile := record.toEntity()
	return &profile, nil
}

func (r *firestoreProfileRepository) Upsert(ctx context.Context, profile entity.Profile) error {
	_, err := r.client.Collection(profilesCollection).Doc(profile.ID).Set(ctx, toProfileRecord(profile))
	if err != nil {
		return errors.Internal("Failed to save profile", err)
	}

	return nil
}

// UpdateDetails merges so that a profile missing on the backend is created
// with the new details rather than failing.
func (r *firestoreProfileRepository) UpdateDetails(ctx context.Context, id, fullName, phone string) error {
	_, err := r.client.Collection(profilesCollection).Doc(id).Set(ctx, map[string]interface{}{
		"id":        id,
		colFullName: fullName,
		colPhone:    phone,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update profile", err)
	}

	return nil
}

func (r *firestoreProfileRepository) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	_, err := r.client.Collection(profilesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: colRole, Value: string(role)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Profile", err)
		}
		return errors.Internal("Failed to update role", err)
	}

	return nil
}
