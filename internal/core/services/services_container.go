package services

import (
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, clotureOptions ...ClotureServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.Auth = NewAuthService(container.User, container.Token, container.GoogleOAuthHandler)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ClotureRepo)
	container.Cloture = NewClotureService(repos.ClotureRepo, repos.LedgerRepo, clotureOptions...)

	return container
}
