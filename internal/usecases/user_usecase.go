package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/domain/repositories"
)

// UserUsecase handles user account management
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetByID gets a user by ID
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the user's own profile changes.
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = null.StringFrom(input.PhoneNumber)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List lists users, optionally filtered by an email/name search term.
func (u *UserUsecase) List(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// SetActive activates or deactivates an account. Deactivation locks out
// logins and refreshes but keeps the record.
func (u *UserUsecase) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return u.userRepo.SetActive(ctx, id, active)
}

// Delete soft-deletes an account.
func (u *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.userRepo.SoftDelete(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("user not found")
	}
	return err
}
