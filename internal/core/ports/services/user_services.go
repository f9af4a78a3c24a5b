package services

import (
	"context"
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/centbook/centbook_backend/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// VerifyCredentials authenticates by email/password, returning
	// apperrors.ErrUnauthorized on any mismatch.
	VerifyCredentials(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves an OAuth sign-in to a local user,
	// creating one on first login.
	FindOrCreateGoogleUser(ctx context.Context, googleID string, email string, name string) (*domain.User, error)

	SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
