package wire

import (
	"DigitalOrganisms/internal/api"
	"DigitalOrganisms/internal/api/config"
	"DigitalOrganisms/internal/api/handler"
	"DigitalOrganisms/internal/job"
	"DigitalOrganisms/internal/pkg/cron"
	"DigitalOrganisms/internal/pkg/kafka"
	"DigitalOrganisms/internal/pkg/minio"
	pkgmongo "DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/probe"
	"DigitalOrganisms/internal/repository"
	"DigitalOrganisms/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	// 未启用 Kafka 时为 nil
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	memberRepo := repository.NewMemberRepo(db)
	articleRepo := repository.NewArticleRepo(db)
	researchRepo := repository.NewResearchRepo(db)
	discussionRepo := repository.NewDiscussionRepo(db)
	integrationRepo := repository.NewIntegrationRepo(db)
	usageLogRepo := repository.NewUsageLogRepo(db)
	snapshotRepo := repository.NewSnapshotRepo(db)
	healthRepo := repository.NewHealthRepo(db)
	jobRunRepo := pkgmongo.NewJobRunRepo(mongoDB)

	metricsService := service.NewMetricsService(
		memberRepo, articleRepo, researchRepo, discussionRepo, integrationRepo, usageLogRepo, healthRepo,
	)
	snapshotService := service.NewSnapshotService(snapshotRepo, metricsService)
	integrationService := service.NewIntegrationService(integrationRepo, usageLogRepo)
	researchService := service.NewResearchService(researchRepo)
	discussionService := service.NewDiscussionService(discussionRepo)
	memberService := service.NewMemberService(memberRepo)

	handlers := &api.HandlersGroup{
		MetricsHandler: handler.NewMetricsHandler(
			metricsService, snapshotService, jobRunRepo,
			cfg.Metrics.HistoricalDefaultDays, cfg.Metrics.HistoricalMaxDays,
		),
		IntegrationHandler: handler.NewIntegrationHandler(integrationService),
		ResearchHandler:    handler.NewResearchHandler(researchService),
		DiscussionHandler:  handler.NewDiscussionHandler(discussionService),
		MemberHandler:      handler.NewMemberHandler(memberService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewDailySnapshotJob(snapshotService, jobRunRepo),
		job.NewUsageLogCleanupJob(
			usageLogRepo, minio.NewDefaultArchiver(),
			cfg.Metrics.UsageRetentionDays, cfg.Metrics.CleanupBatchSize, jobRunRepo,
		),
		job.NewIntegrationHealthJob(
			integrationService, probe.NewHTTPProber(time.Duration(cfg.Probe.Timeout)*time.Second),
			cfg.Probe.Concurrency, jobRunRepo,
		),
	)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, integrationService)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
