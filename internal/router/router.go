package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/config"
	"github.com/campaignhq/campaign-studio-backend/internal/handlers"
	"github.com/campaignhq/campaign-studio-backend/internal/middleware"
	"github.com/campaignhq/campaign-studio-backend/internal/services"
	"github.com/campaignhq/campaign-studio-backend/internal/services/publisher"
)

// SetupRouter wires middleware, services and all API routes.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Shared services
	artifacts := services.NewArtifactService(cfg.Storage.DataDir)
	openaiService := services.NewOpenAIService(cfg.OpenAI)
	copywriter := services.NewCopywriterService(openaiService)
	pub := publisher.NewPublisher(cfg.Publish, artifacts.PublishedDir())

	if openaiService.Enabled() {
		logrus.Info("AI copy generation enabled")
	} else {
		logrus.Info("No OpenAI key configured, using template copy generation")
	}
	logrus.Infof("Publisher mode: %s", pub.Name())

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg.Auth)
	campaignHandler := handlers.NewCampaignHandler(db, artifacts)
	contentHandler := handlers.NewContentHandler(db, artifacts, copywriter)
	recipientHandler := handlers.NewRecipientHandler(db, artifacts)
	publishHandler := handlers.NewPublishHandler(db, artifacts, copywriter, pub)
	exportHandler := handlers.NewExportHandler(db, artifacts)

	sessionMiddleware := middleware.NewSessionMiddleware(authHandler.AuthService())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(sessionMiddleware.RequireSession())
		{
			protected.POST("/demo", contentHandler.CreateDemo)
			protected.POST("/integration/check-email", publishHandler.CheckEmailIntegration)

			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.ListCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaign)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.DELETE("/:id", campaignHandler.ArchiveCampaign)
				campaigns.GET("/:id/results", campaignHandler.GetResults)

				campaigns.GET("/:id/brief", contentHandler.GetBrief)
				campaigns.POST("/:id/brief", contentHandler.RegenerateBrief)
				campaigns.GET("/:id/brief/download", contentHandler.DownloadBrief)

				campaigns.GET("/:id/content", contentHandler.GetContent)
				campaigns.POST("/:id/content", contentHandler.SaveContent)
				campaigns.POST("/:id/content/generate", contentHandler.RegenerateContent)
				campaigns.GET("/:id/content/download", contentHandler.DownloadContent)

				campaigns.GET("/:id/ideas", contentHandler.GetIdeas)
				campaigns.POST("/:id/ideas/choose", contentHandler.ChooseIdea)
				campaigns.POST("/:id/generate-all", contentHandler.GenerateAll)

				campaigns.GET("/:id/recipients", recipientHandler.GetRecipients)
				campaigns.POST("/:id/recipients", recipientHandler.SaveRecipients)

				campaigns.POST("/:id/publish", publishHandler.PublishChannel)
				campaigns.POST("/:id/publish-all", publishHandler.PublishAll)

				campaigns.GET("/:id/export.zip", exportHandler.ExportZip)
			}
		}
	}

	return r
}
