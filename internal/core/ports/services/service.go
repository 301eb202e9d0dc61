package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the handlers.
type ServiceContainer struct {
	Cloture            ClotureSvcFacade
	Ledger             LedgerSvcFacade
	User               UserSvcFacade
	Token              TokenSvcFacade
	Auth               AuthSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
