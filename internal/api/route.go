package api

import (
	"DigitalOrganisms/internal/api/middleware"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/observability"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Token 中的角色为大写
var adminRole = strings.ToUpper(consts.RoleAdmin)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Prometheus
	r.Use(middleware.TraceMiddleware())
	r.Use(observability.GinMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	// Prometheus 抓取
	r.GET("/metrics", gin.WrapH(observability.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("/platform", group.MetricsHandler.GetPlatformMetrics)
			metricsGroup.GET("/dashboard", group.MetricsHandler.GetDashboardMetrics)
			metricsGroup.GET("/historical", group.MetricsHandler.GetHistoricalMetrics)
			metricsGroup.GET("/research", group.MetricsHandler.GetResearchMetrics)
			metricsGroup.GET("/health", group.MetricsHandler.Health)

			// 需要登录 & 拥有 admin 角色
			adminGroup := metricsGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(adminRole))
			{
				adminGroup.POST("/record-daily", group.MetricsHandler.RecordDailyMetrics)
				adminGroup.GET("/jobs", group.MetricsHandler.GetJobRuns)
			}
		}

		integrationGroup := apiGroup.Group("/integrations")
		{
			integrationGroup.GET("", group.IntegrationHandler.ListIntegrations)

			// 调用方可以匿名上报
			authOptGroup := integrationGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.POST("/:id/usage", group.IntegrationHandler.LogUsage)
			}

			authGroup := integrationGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.IntegrationHandler.CreateIntegration)
			}

			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(adminRole))
			{
				adminGroup.PUT("/:id/health", group.IntegrationHandler.UpdateHealth)
			}
		}

		researchGroup := apiGroup.Group("/research")
		{
			researchGroup.GET("/articles", group.ResearchHandler.ListArticles)

			authGroup := researchGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/articles/:id/citation", group.ResearchHandler.AddCitation)
			}
		}

		apiGroup.GET("/discussions", group.DiscussionHandler.ListDiscussions)

		memberGroup := apiGroup.Group("/member")
		{
			memberGroup.POST("/register", group.MemberHandler.Register)
			memberGroup.POST("/login", group.MemberHandler.Login)

			authGroup := memberGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.MemberHandler.Logout)
			}
		}
	}

	return r
}
