package usecase

import (
	"context"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/internal/infrastructure/firebase"
	"rentitforward/internal/infrastructure/geocoding"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/geo"
	"rentitforward/pkg/logger"
	"rentitforward/pkg/utils"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	auth     *firebase.AuthClient
	geocoder geocoding.Geocoder
}

func NewUserUseCase(userRepo repository.UserRepository, auth *firebase.AuthClient, geocoder geocoding.Geocoder) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		auth:     auth,
		geocoder: geocoder,
	}
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Phone     string `json:"phone,omitempty"`
}

func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if !utils.IsValidEmail(input.Email) {
		return nil, errors.BadRequest("Invalid email address", nil)
	}
	if input.Phone != "" && !utils.IsValidPhone(input.Phone) {
		return nil, errors.BadRequest("Invalid Australian phone number", nil)
	}
	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.Conflict("Email is already registered")
	}

	displayName := input.FirstName + " " + input.LastName
	uid, err := uc.auth.CreateUser(ctx, input.Email, input.Password, displayName)
	if err != nil {
		return nil, errors.Internal("Failed to create auth user", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:                 uid,
		Email:              input.Email,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Phone:              input.Phone,
		Status:             entity.UserStatusActive,
		Role:               entity.RoleUser,
		VerificationStatus: entity.VerificationUnverified,
		Preferences:        entity.DefaultNotificationPreferences(),
		JoinedAt:           now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered: %s", uid)
	return user, nil
}

// Authenticate resolves a Firebase ID token to the stored profile and
// stamps last activity.
func (uc *UserUseCase) Authenticate(ctx context.Context, idToken string) (*entity.User, error) {
	uid, err := uc.auth.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.UserStatusBanned {
		return nil, errors.Forbidden("Account has been banned", nil)
	}

	now := time.Now()
	user.LastActiveAt = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to stamp last activity for %s: %v", uid, err)
	}
	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=60"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty"`
	Avatar      *string `json:"avatar,omitempty" validate:"omitempty,url"`

	Address *AddressInput `json:"address,omitempty"`
}

type AddressInput struct {
	Street   string `json:"street" validate:"required"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.IsValidPhone(*input.Phone) {
			return nil, errors.BadRequest("Invalid Australian phone number", nil)
		}
		user.Phone = *input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Address != nil {
		if input.Address.Postcode != "" && !utils.IsValidPostcode(input.Address.Postcode) {
			return nil, errors.BadRequest("Invalid Australian postcode", nil)
		}
		address := entity.Address{
			Street:   input.Address.Street,
			City:     input.Address.City,
			State:    input.Address.State,
			Postcode: input.Address.Postcode,
			Country:  "Australia",
		}
		full := geocoding.CleanAddress(address.Street + ", " + address.City + " " + address.State + " " + address.Postcode)
		if location, gerr := uc.geocoder.Geocode(ctx, full); gerr == nil {
			address.Coordinates = location.Coordinates
			if !geo.WithinAustralia(location.Coordinates) {
				return nil, errors.BadRequest("Address must be in Australia", nil)
			}
		} else {
			logger.Warn("Geocoding failed for user %s address: %v", userID, gerr)
		}
		user.Address = address
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.BadRequest("Password must be at least 8 characters", nil)
	}
	if err := uc.auth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}

// Suspend disables the auth account and flags the profile; active
// bookings are left to run their course.
func (uc *UserUseCase) Suspend(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.auth.DisableUser(ctx, userID); err != nil {
		return errors.Internal("Failed to disable auth user", err)
	}
	user.Status = entity.UserStatusSuspended
	return uc.userRepo.Update(ctx, user)
}
