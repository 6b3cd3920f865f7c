package services

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

// UserReaderSvc defines read operations for users.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated user listing.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users.
type UserWriterSvc interface {
	// CreateUser registers a new account with a hashed password.
	CreateUser(ctx context.Context, req dto.RegisterUserRequest, createdBy string) (*domain.User, error)
}

// UserSvcFacade combines all user service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
