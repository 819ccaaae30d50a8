package handlers

// AppHandlers содержит все хэндлеры приложения
type AppHandlers struct {
	ListingHandler     *ListingHandler
	ViewHandler        *ViewHandler
	ProfileHandler     *ProfileHandler
	ContentHandler     *ContentHandler
	CompetitionHandler *CompetitionHandler
	SitemapHandler     *SitemapHandler
	CVHandler          *CVHandler
	CaptchaHandler     *CaptchaHandler
	RealtimeHandler    *RealtimeHandler
}
