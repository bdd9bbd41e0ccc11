package service

import (
	"context"
	"strings"

	"blogicum/internal/authz"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput is a self edit; nil fields keep their stored value.
type UpdateProfileInput struct {
	UserID    uint
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile resolves a public profile by username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundByError("User", "username", username)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := authz.RequireAuthenticated(in.UserID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if username != user.Username {
			if err := ensureFree(ctx, s.userRepo.GetByUsername, username, user.ID, "Username is already taken"); err != nil {
				return nil, err
			}
		}
		user.Username = username
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if email != user.Email {
			if err := ensureFree(ctx, s.userRepo.GetByEmail, email, user.ID, "Email is already in use"); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if in.FirstName != nil {
		if err := validation.ValidateName("first_name", *in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if err := validation.ValidateName("last_name", *in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = strings.TrimSpace(*in.LastName)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func ensureFree(
	ctx context.Context,
	lookup func(context.Context, string) (*models.User, error),
	value string,
	selfID uint,
	message string,
) error {
	existing, err := lookup(ctx, value)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return models.NewValidationError(message)
	}
	return nil
}
