package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Signup creates a new account and returns a fresh token for it.
// Exactly one account ever wins the bootstrap claim and becomes admin;
// all others are plain users.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	if username == "" || email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	isFirst, err := s.repo.ClaimBootstrap(ctx)
	if err != nil {
		return "", nil, err
	}
	role := domain.RoleUser
	if isFirst {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if isFirst {
			// The claim was consumed but no admin exists; hand the slot
			// back so the next signup can win it.
			if relErr := s.repo.ReleaseBootstrap(ctx); relErr != nil {
				s.logger.Error().Err(relErr).Msg("failed to release bootstrap claim")
			}
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user signed up")
	return token, created, nil
}

// Login verifies credentials and returns a fresh token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}
