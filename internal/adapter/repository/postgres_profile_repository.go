package repository

import (
	"context"
	"database/sql"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, full_name, role, phone FROM profiles WHERE id = $1", id)

	var rec profileRecord
	err := row.Scan(&rec.ID, &rec.FullName, &rec.Role, &rec.Phone)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Profile", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get profile", err)
	}

	profile := rec.toEntity()
	return &profile, nil
}

func (r *postgresProfileRepository) Upsert(ctx context.Context, profile entity.Profile) error {
	rec := toProfileRecord(profile)
	query := `
		INSERT INTO profiles (id, full_name, role, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			phone = EXCLUDED.phone
	`
	if _, err := r.db.ExecContext(ctx, query, rec.ID, rec.FullName, rec.Role, rec.Phone); err != nil {
		return errors.Internal("Failed to save profile", err)
	}
	return nil
}

func (r *postgresProfileRepository) UpdateDetails(ctx context.Context, id, fullName, phone string) error {
	query := `
		INSERT INTO profiles (id, full_name, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone
	`
	if _, err := r.db.ExecContext(ctx, query, id, fullName, phone); err != nil {
		return errors.Internal("Failed to update profile", err)
	}
	return nil
}

func (r *postgresProfileRepository) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	res, err := r.db.ExecContext(ctx, "UPDATE profiles SET role = $2 WHERE id = $1", id, string(role))
	if err != nil {
		return errors.Internal("Failed to update role", err)
	}
	return expectRow(res, "Profile")
}
