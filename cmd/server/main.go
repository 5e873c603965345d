package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mumtazka/kolam-sub000/config"
	"github.com/mumtazka/kolam-sub000/internal/cache"
	"github.com/mumtazka/kolam-sub000/internal/database"
	"github.com/mumtazka/kolam-sub000/internal/handler"
	"github.com/mumtazka/kolam-sub000/internal/queue"
	"github.com/mumtazka/kolam-sub000/internal/repository"
	"github.com/mumtazka/kolam-sub000/internal/service"
	"github.com/mumtazka/kolam-sub000/internal/worker"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// repositories
	categoryRepo := repository.NewCategoryRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	scanLogRepo := repository.NewScanLogRepository(pool)

	// scan-log pipeline
	scanQueue, err := queue.NewRedisStreamScanQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize scan queue: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanLogWorker := worker.NewScanLogWorker(scanLogRepo, scanQueue)
	if err := scanLogWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start scan log worker: %v", err)
	}

	// services
	sequences := cache.NewRedisSequenceAllocator(rdb)
	issuanceService := service.NewIssuanceService(pool, ticketRepo, categoryRepo, packageRepo, sequences)
	redemptionService := service.NewRedemptionService(ticketRepo, scanQueue)
	ticketQueryService := service.NewTicketQueryService(ticketRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	packageService := service.NewPackageService(packageRepo)
	reportService := service.NewReportService(ticketRepo, scanLogRepo)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewTicketHandler(issuanceService, ticketQueryService).RegisterRoutes(router)
	handler.NewScanHandler(redemptionService).RegisterRoutes(router)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(router)
	handler.NewPackageHandler(packageService).RegisterRoutes(router)
	handler.NewReportHandler(reportService).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
