package api

import "DigitalOrganisms/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MetricsHandler     *handler.MetricsHandler
	IntegrationHandler *handler.IntegrationHandler
	ResearchHandler    *handler.ResearchHandler
	DiscussionHandler  *handler.DiscussionHandler
	MemberHandler      *handler.MemberHandler
}
