package services

import (
	"collab_backend/internal/auth"
	"collab_backend/internal/config"
	"collab_backend/internal/email"
	"collab_backend/internal/imageprocessor"
	"collab_backend/internal/repositories"
	"collab_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService      AuthService
	ProfileService   ProfileService
	CampaignService  CampaignService
	DiscoveryService DiscoveryService
	DraftService     DraftService
	AdminService     AdminService
	UploadService    UploadService
	Notifier         Notifier
	EmailService     email.Provider
	Pricing          Pricing
}

// Dependencies - внешние зависимости, которые собирает app
type Dependencies struct {
	Config    *config.Config
	Tokens    *auth.TokenManager
	Email     email.Provider
	Storage   storage.Storage
	Instagram InstagramAuthenticator
	Events    EventPusher
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	campaignRepo := repositories.NewCampaignRepository()
	draftRepo := repositories.NewDraftRepository()
	statsRepo := repositories.NewStatsRepository()

	cfg := deps.Config
	pricing := NewPricing(cfg.Pricing)
	notifier := NewNotifier(deps.Email, deps.Events)

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo, profileRepo, deps.Tokens, deps.Instagram, pricing, cfg.Admin.SetupKey),
		ProfileService:   NewProfileService(userRepo, profileRepo, campaignRepo, pricing),
		CampaignService:  NewCampaignService(campaignRepo, userRepo, notifier, pricing),
		DiscoveryService: NewDiscoveryService(profileRepo, campaignRepo, pricing),
		DraftService:     NewDraftService(draftRepo, campaignRepo, userRepo, notifier),
		AdminService:     NewAdminService(userRepo, profileRepo, campaignRepo, draftRepo, statsRepo, pricing),
		UploadService:    NewUploadService(deps.Storage, imageprocessor.NewProcessor(85), cfg.Upload),
		Notifier:         notifier,
		EmailService:     deps.Email,
		Pricing:          pricing,
	}
}
