package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/auth/service"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user. Its ID is set on success.
	//
	// If the email is already taken, a validation error for the "email" field is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, a not found error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "id" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Method GetOrCreate returns the token bound to the user, storing "candidate" if the user has none.
	//
	// "userID" parameter is the token owner.
	// "candidate" parameter is the token stored when the user has no token yet.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	GetOrCreate(ctx context.Context, userID int, candidate string) (*models.UserToken, error)
	// Method GetByToken retrieves a user token by token string.
	//
	// "token" parameter is used to retrieve a user token by token string.
	//
	// If user token with such token does not exist, a not found error will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method DeleteByToken deletes a user token by token string.
	//
	// "token" parameter is used to delete a user token by token string.
	//
	// Deleting an unknown token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpiredTokens deletes all tokens created at or before "expiryTime".
	//
	// Returns the number of deleted tokens.
	DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// normalizeEmail trims and lowercases an email so lookups are case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a non-staff, active user and returns its bearer token
func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) (string, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperrors.FieldError("email", "user with this email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: string(passwordHash),
		IsStaff:      false,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info("user signed up", zap.Int("userId", user.ID))

	return s.issueToken(ctx, user.ID)
}

// Login verifies the credentials and returns the user's bearer token.
// Repeated logins return the same token while it stays valid.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.ErrAuthentication
		}
		return "", err
	}

	if !user.IsActive {
		return "", apperrors.ErrAuthentication
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperrors.ErrAuthentication
	}

	return s.issueToken(ctx, user.ID)
}

// Logout revokes the token
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.userTokenRepo.DeleteByToken(ctx, token)
}

// Authenticate resolves a bearer token to an active user.
// Every rejection wraps apperrors.ErrForbidden.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokenGenerator.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrForbidden, err)
	}

	userToken, err := s.userTokenRepo.GetByToken(ctx, token)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: token revoked", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if userToken.UserID != userID {
		return nil, fmt.Errorf("%w: token owner mismatch", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}

	return user, nil
}

// issueToken returns the user's stored token, minting one when there is none.
// A stored token that no longer validates (expired, or signed with a rotated secret) is replaced.
func (s *authService) issueToken(ctx context.Context, userID int) (string, error) {
	candidate, err := s.tokenGenerator.Generate(userID)
	if err != nil {
		return "", err
	}

	userToken, err := s.userTokenRepo.GetOrCreate(ctx, userID, candidate)
	if err != nil {
		return "", err
	}
	if userToken.Token == candidate {
		return candidate, nil
	}

	if _, err := s.tokenGenerator.Validate(userToken.Token); err == nil {
		return userToken.Token, nil
	}

	s.logger.Info("replacing stale user token", zap.Int("userId", userID))
	if err := s.userTokenRepo.DeleteByToken(ctx, userToken.Token); err != nil {
		return "", err
	}

	userToken, err = s.userTokenRepo.GetOrCreate(ctx, userID, candidate)
	if err != nil {
		return "", err
	}
	if userToken.Token != candidate {
		// Another login stored a fresh token in between; it is just as valid.
		if _, err := s.tokenGenerator.Validate(userToken.Token); err != nil {
			return "", errors.New("failed to replace stale token")
		}
	}

	return userToken.Token, nil
}
