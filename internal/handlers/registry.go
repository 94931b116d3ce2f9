package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	InfluencerHandler *InfluencerHandler
	CampaignHandler   *CampaignHandler
	DiscoveryHandler  *DiscoveryHandler
	DraftHandler      *DraftHandler
	AdminHandler      *AdminHandler
	UploadHandler     *UploadHandler
	HealthHandler     *HealthHandler
}
