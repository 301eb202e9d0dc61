package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/core/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{UserID: "u-admin", OrganisationID: "org-1", Role: domain.RoleAdmin}
	req := dto.CreateUserRequest{Name: "Awa", Email: " Awa@Ferme.test ", Password: "motdepasse", Role: domain.RoleComptable}

	t.Run("admin creates a user in its organisation", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "awa@ferme.test" && u.OrganisationID == "org-1" && u.Role == domain.RoleComptable &&
				utils.CheckPasswordHash("motdepasse", u.PasswordHash)
		})).Return(nil).Once()

		user, err := services.NewUserService(repo).CreateUser(ctx, admin, req)

		require.NoError(t, err)
		assert.Equal(t, "u-admin", user.CreatedBy)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

		_, err := services.NewUserService(repo).CreateUser(ctx, admin, req)

		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		comptable := admin
		comptable.Role = domain.RoleComptable

		_, err := services.NewUserService(repo).CreateUser(ctx, comptable, req)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetUserByEmail_Normalizes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindUserByEmail", ctx, "awa@ferme.test").Return(nil, apperrors.ErrNotFound).Once()

	_, err := services.NewUserService(repo).GetUserByEmail(ctx, "  AWA@ferme.test")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestUserService_BootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates organisation and admin once", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindUserByEmail", ctx, "boss@ferme.test").Return(nil, apperrors.ErrNotFound).Once()
		repo.On("SaveOrganisationWithAdmin", ctx, mock.MatchedBy(func(o domain.Organisation) bool {
			return o.Name == "Ferme du Lac"
		}), mock.MatchedBy(func(u domain.User) bool {
			return u.Role == domain.RoleAdmin && u.CreatedBy == u.UserID
		})).Return(nil).Once()

		user, created, err := services.NewUserService(repo).BootstrapAdmin(ctx, "Ferme du Lac", "Boss", "Boss@ferme.test", "motdepasse")

		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, user.OrganisationID)
		repo.AssertExpectations(t)
	})

	t.Run("existing email is left untouched", func(t *testing.T) {
		repo := new(MockUserRepository)
		existing := &domain.User{UserID: "u-1", Email: "boss@ferme.test", Role: domain.RoleAdmin}
		repo.On("FindUserByEmail", ctx, "boss@ferme.test").Return(existing, nil).Once()

		user, created, err := services.NewUserService(repo).BootstrapAdmin(ctx, "Ferme", "Boss", "boss@ferme.test", "motdepasse")

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing, user)
		repo.AssertNotCalled(t, "SaveOrganisationWithAdmin", mock.Anything, mock.Anything, mock.Anything)
	})
}
