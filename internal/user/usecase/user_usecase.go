// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	"github.com/ovationhq/ovation/internal/user/domain"
	"github.com/ovationhq/ovation/internal/user/service"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// UpdateProfileInput contains the updatable profile fields. Empty fields
// are left unchanged.
type UpdateProfileInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	UpdateFeatures(ctx context.Context, username string, features []string) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	userRepo        UserRepository
	passwordService service.PasswordService
	catalog         *authzDomain.Catalog
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo UserRepository,
	passwordService service.PasswordService,
	catalog *authzDomain.Catalog,
) *UserUseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		catalog:         catalog,
	}
}

var passwordRules = appValidation.PasswordStrength{
	MinLength:     8,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			passwordRules,
		),
		validation.Field(&input.FullName,
			validation.Length(0, 255).Error("full_name must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new user with the baseline member features.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	features := make([]string, 0, len(authzDomain.DefaultMemberFeatures))
	for _, f := range authzDomain.DefaultMemberFeatures {
		features = append(features, string(f))
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: strings.TrimSpace(strings.ToLower(input.Username)),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		Password: hashedPassword,
		FullName: strings.TrimSpace(input.FullName),
		Features: features,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (uc *UserUseCase) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) validateUpdateProfileInput(input UpdateProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.When(input.Email != "",
				appValidation.Email,
				validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
			),
		),
		validation.Field(&input.Password,
			validation.When(input.Password != "",
				validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
				passwordRules,
			),
		),
		validation.Field(&input.FullName,
			validation.Length(0, 255).Error("full_name must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateProfile applies the provided profile changes to an existing user.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if err := uc.validateUpdateProfileInput(input); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = strings.TrimSpace(strings.ToLower(input.Email))
	}
	if input.FullName != "" {
		user.FullName = strings.TrimSpace(input.FullName)
	}
	if input.Password != "" {
		hashedPassword, err := uc.passwordService.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFeatures replaces a user's granted features. Every feature string
// is validated against the catalog; a single unknown string rejects the
// whole assignment.
func (uc *UserUseCase) UpdateFeatures(ctx context.Context, username string, features []string) (*domain.User, error) {
	validated, err := uc.catalog.Validate(features)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	granted := make([]string, 0, len(validated))
	for _, f := range validated {
		granted = append(granted, string(f))
	}
	user.Features = granted

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user by ID
func (uc *UserUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return uc.userRepo.Delete(ctx, id)
}
