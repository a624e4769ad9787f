package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"leadflow/internal/config"
	"leadflow/internal/database"
	"leadflow/internal/middleware"
	"leadflow/internal/modules/dashboard"
	"leadflow/internal/modules/lead"
	"leadflow/internal/modules/order"
	"leadflow/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db, repository.LeadModel(), repository.OrderModel()); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("Database tables created/checked")

	leadRepo := repository.NewLeadRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	leadService := lead.NewService(leadRepo)
	leadHandler := lead.NewHandler(leadService)

	orderService := order.NewService(orderRepo, leadRepo)
	orderHandler := order.NewHandler(orderService)

	dashboardService := dashboard.NewService(leadRepo, orderRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorLogger())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "leadflow API"})
	})

	v1 := r.Group("/api/v1")
	{
		leadHandler.RegisterRoutes(v1)
		orderHandler.RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
