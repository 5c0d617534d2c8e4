package router

import (
	"github.com/esrickpics/ProyectoSSAPI/internal/config"
	"github.com/esrickpics/ProyectoSSAPI/internal/handler"
	"github.com/esrickpics/ProyectoSSAPI/internal/middleware"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorRecovery(cfg.Server.Mode == gin.DebugMode))

	taxonomy := service.NewTaxonomyService(db)
	people := service.NewPersonService(db)
	assets := service.NewAssetService(db)
	maintenance := service.NewMaintenanceService(db)
	query := service.NewQueryService(db)

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	taxonomyHandler := handler.NewTaxonomyHandler(taxonomy)
	protected.GET("/categories", taxonomyHandler.ListCategories)
	protected.POST("/categories", taxonomyHandler.CreateCategory)
	protected.PUT("/categories/:id", taxonomyHandler.UpdateCategory)
	protected.DELETE("/categories/:id", taxonomyHandler.DeleteCategory)

	protected.GET("/subcategories", taxonomyHandler.ListSubcategories)
	protected.POST("/subcategories", taxonomyHandler.CreateSubcategory)
	protected.PUT("/subcategories/:id", taxonomyHandler.UpdateSubcategory)
	protected.DELETE("/subcategories/:id", taxonomyHandler.DeleteSubcategory)

	protected.GET("/locations", taxonomyHandler.ListLocations)
	protected.POST("/locations", taxonomyHandler.CreateLocation)
	protected.PUT("/locations/:id", taxonomyHandler.UpdateLocation)
	protected.DELETE("/locations/:id", taxonomyHandler.DeleteLocation)

	personHandler := handler.NewPersonHandler(people, cfg)
	protected.GET("/people", personHandler.Search)
	protected.GET("/people/:id", personHandler.Get)
	protected.POST("/people", personHandler.Create)
	protected.PUT("/people/:id", personHandler.Update)
	protected.DELETE("/people/:id", personHandler.Delete)

	assetHandler := handler.NewAssetHandler(assets, query, cfg)
	protected.GET("/assets", assetHandler.List)
	protected.GET("/assets/dashboard", assetHandler.Dashboard)
	protected.GET("/assets/:id", assetHandler.Get)
	protected.POST("/assets", assetHandler.Create)
	protected.PUT("/assets/:id", assetHandler.Update)
	protected.DELETE("/assets/:id", assetHandler.Delete)
	protected.POST("/assets/:id/reassign", assetHandler.Reassign)
	protected.POST("/assets/:id/relocate", assetHandler.Relocate)
	protected.GET("/assets/:id/history", assetHandler.History)

	maintenanceHandler := handler.NewMaintenanceHandler(maintenance, query, cfg)
	protected.GET("/maintenance", maintenanceHandler.List)
	protected.GET("/maintenance/:id", maintenanceHandler.Get)
	protected.POST("/maintenance", maintenanceHandler.Create)
	protected.PUT("/maintenance/:id", maintenanceHandler.Update)
	protected.POST("/maintenance/:id/finish", maintenanceHandler.Finish)

	reportHandler := handler.NewReportHandler(db, query, cfg)
	protected.GET("/reports", reportHandler.ListLogs)
	protected.GET("/reports/assets/pdf", reportHandler.GeneralPDF)
	protected.POST("/reports/delivery-note", reportHandler.DeliveryNote)
	protected.GET("/export/assets/xlsx", reportHandler.ExportXLSX)

	return r
}
