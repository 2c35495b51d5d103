package repository

import (
	"context"
	"fmt"

	"phone-auth/internal/data/entity"
	"phone-auth/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByStrategy(ctx context.Context, strategyName, externalIdentifier string) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	// SQL query
	query := `
		INSERT INTO users (id, strategy_name, external_identifier, password_hash,
		                  verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// Execute query
	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.StrategyName,
		user.ExternalIdentifier,
		user.PasswordHash,
		user.Verified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("strategy_name", user.StrategyName),
			zap.String("external_identifier", user.ExternalIdentifier),
		)
		return fmt.Errorf("create user %s/%s: %w", user.StrategyName, user.ExternalIdentifier, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, strategy_name, external_identifier, password_hash,
		       verified, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	var user entity.User
	// QueryRow returns at most one row
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.StrategyName,
		&user.ExternalIdentifier,
		&user.PasswordHash,
		&user.Verified,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return &user, nil
}

// FindByStrategy looks a user up by its login key. The (strategy_name,
// external_identifier) pair is unique, so the same identifier may exist
// under different strategies without colliding.
func (ur *userRepository) FindByStrategy(ctx context.Context, strategyName, externalIdentifier string) (*entity.User, error) {
	query := `
		SELECT id, strategy_name, external_identifier, password_hash,
		       verified, created_at, updated_at, deleted_at
		FROM users
		WHERE strategy_name = $1 AND external_identifier = $2 AND deleted_at IS NULL
	`

	var user entity.User
	// QueryRow returns at most one row
	err := ur.db.QueryRow(ctx, query, strategyName, externalIdentifier).Scan(
		&user.ID,
		&user.StrategyName,
		&user.ExternalIdentifier,
		&user.PasswordHash,
		&user.Verified,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by strategy",
			zap.Error(err),
			zap.String("strategy_name", strategyName),
			zap.String("external_identifier", externalIdentifier),
		)
		return nil, fmt.Errorf("find user by strategy %s/%s: %w", strategyName, externalIdentifier, err)
	}

	return &user, nil
}
