package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearguard-backend/dal"
	"gearguard-backend/models"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
)

type UserRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *UserRepository) table() string {
	return r.config.TableName("users")
}

func (r *UserRepository) emailTable() string {
	return r.config.TableName("user_emails")
}

// CreateUser stores a new user. The email must not be registered yet.
// The address is claimed first with a conditional put keyed by email, so two
// concurrent registrations cannot both pass the lookup on the email index.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := r.GetUserByEmail(ctx, user.Email)
	if err != nil && !models.IsKind(err, models.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	now := time.Now()
	user.ID = "user_" + utils.GenerateUUID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.claimEmail(ctx, user); err != nil {
		return nil, err
	}

	err = r.db.CreateItem(ctx, r.table(), "id", user)
	if err == nil {
		r.logger.Infof("User created successfully: %s", user.ID)
		return user, nil
	}

	// give the address back so a retry is not locked out
	if releaseErr := r.db.DeleteItem(ctx, r.emailTable(), "email", user.Email); releaseErr != nil {
		r.logger.Warnf("Failed to release email claim for %s: %v", user.Email, releaseErr)
	}
	if errors.Is(err, dal.ErrDuplicateKey) {
		return nil, models.NewConflictError("Email already registered")
	}
	r.logger.Errorf("Failed to create user: %v", err)
	return nil, fmt.Errorf("failed to create user: %w", err)
}

func (r *UserRepository) claimEmail(ctx context.Context, user *models.User) error {
	err := r.db.CreateItem(ctx, r.emailTable(), "email", &models.EmailClaim{
		Email:     user.Email,
		UserID:    user.ID,
		CreatedAt: user.CreatedAt,
	})
	if errors.Is(err, dal.ErrDuplicateKey) {
		r.logger.Warnf("Email already claimed: %s", user.Email)
		return models.NewConflictError("Email already registered")
	}
	if err != nil {
		r.logger.Errorf("Failed to claim email %s: %v", user.Email, err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email-index", "email", email)
}

func (r *UserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.getUser(ctx, "resetToken-index", "resetToken", token)
}

func (r *UserRepository) getUser(ctx context.Context, indexName, keyName, value string) (*models.User, error) {
	if value == "" {
		return nil, models.NewNotFoundError("User not found")
	}

	user := models.User{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		IndexName: indexName,
		KeyName:   keyName,
		KeyValue:  value,
		KeyType:   models.StringType,
	}, &user)
	if err != nil {
		r.logger.Errorf("Failed to get user by %s: %v", keyName, err)
		return nil, fmt.Errorf("failed to get user by %s: %w", keyName, err)
	}

	if user.ID == "" {
		return nil, models.NewNotFoundError("User not found")
	}
	return &user, nil
}

func (r *UserRepository) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.QueryByIndex(ctx, r.table(), "role-index", "role", role.String(), &users); err != nil {
		r.logger.Errorf("Failed to list %s users: %v", role, err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.ScanTable(ctx, r.table(), &users); err != nil {
		r.logger.Errorf("Failed to list users: %v", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"resetToken":   token,
		"resetExpires": expires,
	})
}

// ConsumeResetToken replaces the password hash and removes the reset token in
// one conditional write. It returns a NotFound error when the stored token is
// no longer token, so a token can be redeemed at most once.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, id, token, passwordHash string) error {
	err := r.db.UpdateItemIf(ctx, r.table(), "id", id, map[string]interface{}{
		"passwordHash": passwordHash,
		"resetToken":   nil,
		"resetExpires": nil,
		"updatedAt":    time.Now(),
	}, map[string]interface{}{
		"resetToken": token,
	})
	if errors.Is(err, dal.ErrConditionFailed) {
		return models.NewNotFoundError("Reset token not found")
	}
	if err != nil {
		r.logger.Errorf("Failed to reset password for user %s: %v", id, err)
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	return r.update(ctx, id, map[string]interface{}{
		"resetToken":   nil,
		"resetExpires": nil,
	})
}

func (r *UserRepository) update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	err := r.db.UpdateItem(ctx, r.table(), "id", id, updates)
	if errors.Is(err, dal.ErrNotFound) {
		return models.NewNotFoundError("User not found")
	}
	if err != nil {
		r.logger.Errorf("Failed to update user %s: %v", id, err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.db.CountItems(ctx, r.table(), nil)
}
