// Package usecase implements the session business logic: login, logout,
// token authentication, and expired-session cleanup.
package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/ovationhq/ovation/internal/errors"
	"github.com/ovationhq/ovation/internal/session/domain"
	"github.com/ovationhq/ovation/internal/session/service"
	userDomain "github.com/ovationhq/ovation/internal/user/domain"
	userService "github.com/ovationhq/ovation/internal/user/service"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// LoginInput contains the credentials for a login attempt.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput contains the plain session token returned once at login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
}

// UseCase defines the interface for session business logic operations
type UseCase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, plainToken string) error
	Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionRepository interface defines session repository operations
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// UserRepository interface defines the user repository operations needed
// for credential verification and identity loading.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// SessionUseCase handles session-related business logic
type SessionUseCase struct {
	sessionRepo     SessionRepository
	userRepo        UserRepository
	tokenService    service.TokenService
	passwordService userService.PasswordService
	expiration      time.Duration
}

// NewSessionUseCase creates a new SessionUseCase
func NewSessionUseCase(
	sessionRepo SessionRepository,
	userRepo UserRepository,
	tokenService service.TokenService,
	passwordService userService.PasswordService,
	expiration time.Duration,
) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		expiration:      expiration,
	}
}

func (uc *SessionUseCase) validateLoginInput(input LoginInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Login verifies the credentials and creates a session. The plain token is
// returned to the caller and never persisted; wrong username and wrong
// password both map to ErrInvalidCredentials.
func (uc *SessionUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := uc.validateLoginInput(input); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.passwordService.ComparePassword(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := uc.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(uc.expiration),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginOutput{
		Token:     plainToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout removes the session matching the presented token.
func (uc *SessionUseCase) Logout(ctx context.Context, plainToken string) error {
	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.tokenService.HashToken(plainToken))
	if err != nil {
		return err
	}
	return uc.sessionRepo.Delete(ctx, session.ID)
}

// Authenticate resolves a bearer token to its user. Expired sessions are
// deleted on sight and rejected.
func (uc *SessionUseCase) Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error) {
	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.tokenService.HashToken(plainToken))
	if err != nil {
		return nil, err
	}

	if session.IsExpired(time.Now()) {
		if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, domain.ErrSessionExpired
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteExpired removes all expired sessions. Invoked by the cleanup
// command, not by the request path.
func (uc *SessionUseCase) DeleteExpired(ctx context.Context) (int64, error) {
	return uc.sessionRepo.DeleteExpired(ctx, time.Now())
}
