package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth               AuthSvcFacade
	User               UserSvcFacade
	Note               NoteSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	// TokenSigner is shared with the auth middleware for access-token verification.
	TokenSigner TokenSigner
}
