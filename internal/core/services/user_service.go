package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:         uuid.NewString(),
		OrganisationID: actor.OrganisationID,
		Name:           strings.TrimSpace(req.Name),
		Email:          normalizeEmail(req.Email),
		Role:           req.Role,
		PasswordHash:   hash,
		AuditFields:    domain.NewAuditFields(actor.UserID, time.Now().UTC()),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) BootstrapAdmin(ctx context.Context, organisationName, name, email, password string) (*domain.User, bool, error) {
	existing, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	org := domain.Organisation{
		OrganisationID: uuid.NewString(),
		Name:           strings.TrimSpace(organisationName),
		CreatedAt:      now,
	}
	userID := uuid.NewString()
	admin := domain.User{
		UserID:         userID,
		OrganisationID: org.OrganisationID,
		Name:           strings.TrimSpace(name),
		Email:          normalizeEmail(email),
		Role:           domain.RoleAdmin,
		PasswordHash:   hash,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	if err := s.userRepo.SaveOrganisationWithAdmin(ctx, org, admin); err != nil {
		s.LogError(ctx, err, "Failed to bootstrap organisation")
		return nil, false, fmt.Errorf("failed to bootstrap organisation: %w", err)
	}
	s.LogInfo(ctx, "Organisation bootstrapped", slog.String("organisation_id", org.OrganisationID), slog.String("user_id", userID))
	return &admin, true, nil
}
