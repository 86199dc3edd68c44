package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const UniqueViolation = "23505"

type Store interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (User, error)
	GetOrCreateGuest(ctx context.Context, deviceKey string) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	FindUserWithRefreshToken(ctx context.Context, refreshToken string) (User, error)
	SaveRefreshToken(ctx context.Context, userID, refreshToken string) error
	RotateRefreshToken(ctx context.Context, oldRefreshToken, refreshToken string) error
	DeleteRefreshToken(ctx context.Context, refreshToken string) error
}

type Repository struct {
	queries *database.Queries
}

func NewUserStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

func (r *Repository) CreateAccount(ctx context.Context, params CreateAccountParams) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row, err := r.queries.CreateAccountUser(ctx, database.CreateAccountUserParams{
		ID:           uuid.NewString(),
		Email:        text(params.Email),
		PasswordHash: text(params.PasswordHash),
		GoogleID:     text(params.GoogleID),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, custom_errors.ErrConflict
		}
		return User{}, fmt.Errorf("error creating user: %w", err)
	}

	return userFromRow(row), nil
}

// GetOrCreateGuest returns the guest bound to deviceKey, creating it on first
// use. A concurrent first use that loses the insert race reads the winner.
func (r *Repository) GetOrCreateGuest(ctx context.Context, deviceKey string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row, err := r.queries.GetGuestByDeviceKey(ctx, text(deviceKey))
	if err == nil {
		return userFromRow(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, fmt.Errorf("error fetching guest: %w", err)
	}

	row, err = r.queries.CreateGuestUser(ctx, database.CreateGuestUserParams{
		ID:        uuid.NewString(),
		DeviceKey: text(deviceKey),
	})
	if err != nil {
		if isUniqueViolation(err) {
			row, err = r.queries.GetGuestByDeviceKey(ctx, text(deviceKey))
			if err == nil {
				return userFromRow(row), nil
			}
		}
		return User{}, fmt.Errorf("error creating guest: %w", err)
	}

	return userFromRow(row), nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row, err := r.queries.GetUserByEmail(ctx, text(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, custom_errors.ErrNotFound
		}
		return User{}, fmt.Errorf("error fetching user: %w", err)
	}

	return userFromRow(row), nil
}

func (r *Repository) FindUserWithRefreshToken(ctx context.Context, refreshToken string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row, err := r.queries.GetUserByRefreshToken(ctx, text(refreshToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, custom_errors.ErrNotFound
		}
		return User{}, fmt.Errorf("error fetching user: %w", err)
	}

	return userFromRow(row), nil
}

func (r *Repository) SaveRefreshToken(ctx context.Context, userID, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.UpdateRefreshToken(ctx, database.UpdateRefreshTokenParams{
		ID:           userID,
		RefreshToken: text(refreshToken),
	})
	if err != nil {
		return fmt.Errorf("error saving refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken swaps the stored token only if oldRefreshToken is still
// current, so a replayed token cannot be rotated twice.
func (r *Repository) RotateRefreshToken(ctx context.Context, oldRefreshToken, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.queries.RotateRefreshToken(ctx, database.RotateRefreshTokenParams{
		NewToken: text(refreshToken),
		OldToken: text(oldRefreshToken),
	})
	if err != nil {
		return fmt.Errorf("error updating refresh token: %w", err)
	}
	if rows == 0 {
		return custom_errors.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.queries.DeleteRefreshToken(ctx, text(refreshToken)); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

func userFromRow(row database.User) User {
	return User{
		ID:           row.ID,
		Kind:         row.Kind,
		Email:        row.Email.String,
		DeviceKey:    row.DeviceKey.String,
		PasswordHash: row.PasswordHash.String,
		GoogleID:     row.GoogleID.String,
		CreatedAt:    row.CreatedAt.Time,
	}
}

func text(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

func isUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == UniqueViolation
}
