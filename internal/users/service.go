package users

import (
	"context"
	"errors"

	"agile-exchange-backend/internal/auth"
	"agile-exchange-backend/internal/middleware"
	"agile-exchange-backend/internal/models"
	"agile-exchange-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("User not found")
	ErrSelfRemoval   = errors.New("You cannot remove your own account")
	ErrNothingToSave = errors.New("No profile fields to update")
)

type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// List returns all users, oldest first.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

// Create adds a team member account. Same validation path as registration.
func (s *Service) Create(ctx context.Context, input auth.RegisterInput) (*models.User, error) {
	return auth.RegisterUser(s.DB.WithContext(ctx), input)
}

// Remove soft-deletes the user and revokes their outstanding tokens.
// Actors cannot remove themselves.
func (s *Service) Remove(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrSelfRemoval
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", targetID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}
	if s.Rdb != nil {
		return middleware.RevokeUserTokens(ctx, s.Rdb, targetID.String())
	}
	return nil
}

// ProfileInput carries optional profile updates.
type ProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// UpdateProfile updates the current user's own fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*models.User, error) {
	if input.FirstName == nil && input.LastName == nil && input.Email == nil {
		return nil, ErrNothingToSave
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if input.Email != nil {
		if !validation.IsValidEmail(*input.Email) {
			return nil, auth.ErrInvalidEmail
		}
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", *input.Email, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, auth.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
