package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/marketplace/internal/user/app"
	"github.com/dwikikusuma/marketplace/internal/user/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, name, surname, age, bio, profile_picture, is_admin, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u       domain.User
		age     sql.NullInt32
		bio     sql.NullString
		picture sql.NullString
	)
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.Surname,
		&age, &bio, &picture, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	if age.Valid {
		u.Age = &age.Int32
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	if picture.Valid {
		u.ProfilePicture = &picture.String
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := `
INSERT INTO users (username, email, password_hash, name, surname, is_admin)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

	created, err := scanUser(postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q,
		u.Username, u.Email, u.PasswordHash, u.Name, u.Surname, u.IsAdmin))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.User{}, app.ErrConflict
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", postgres.Classify(err))
	}
	return created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (domain.User, error) {
	u, err := scanUser(postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", postgres.Classify(err))
	}
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, p domain.ProfilePatch) (domain.User, error) {
	q := `
UPDATE users SET
    email           = COALESCE($2, email),
    name            = COALESCE($3, name),
    surname         = COALESCE($4, surname),
    age             = COALESCE($5::int, age),
    bio             = COALESCE($6, bio),
    profile_picture = COALESCE($7, profile_picture),
    updated_at      = now()
WHERE id = $1
RETURNING ` + userColumns

	u, err := scanUser(postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q,
		id, p.Email, p.Name, p.Surname, p.Age, p.Bio, p.ProfilePicture))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.User{}, app.ErrConflict
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", postgres.Classify(err))
	}
	return u, nil
}
