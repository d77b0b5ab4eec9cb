package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements UserRepository (usable with pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass a pool or tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persists a new user.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, username, email, password_hash, default_shop_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Username, nullIfEmpty(user.Email), user.PasswordHash,
		nullIfEmpty(user.DefaultShopID), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByUsername fetches a user by username (for login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE username = $1`, username)
}

func (r *UserRepo) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, username, email, password_hash, default_shop_id, created_at, updated_at
		FROM users ` + where
	var u entity.User
	var email, defaultShopID *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &email, &u.PasswordHash, &defaultShopID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Email = derefStr(email)
	u.DefaultShopID = derefStr(defaultShopID)
	return &u, nil
}

// SetDefaultShop overwrites the default-shop pointer. Last write wins.
func (r *UserRepo) SetDefaultShop(ctx context.Context, userID, shopID string) error {
	query := `UPDATE users SET default_shop_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, userID, nullIfEmpty(shopID))
	if err != nil {
		return fmt.Errorf("set default shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
