package repository

import (
	"context"

	"gretastore/internal/domain/entity"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Upsert(ctx context.Context, profile entity.Profile) error
	UpdateDetails(ctx context.Context, id, fullName, phone string) error
	UpdateRole(ctx context.Context, id string, role entity.Role) error
}
