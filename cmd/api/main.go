package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yourusername/rally-api/internal/config"
	"github.com/yourusername/rally-api/internal/handler"
	"github.com/yourusername/rally-api/internal/middleware"
	pgRepo "github.com/yourusername/rally-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/rally-api/internal/repository/redis"
	"github.com/yourusername/rally-api/internal/service"
	ws "github.com/yourusername/rally-api/internal/websocket"
	"github.com/yourusername/rally-api/pkg/database"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не загружен: %v", err)
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	teamRepo := pgRepo.NewTeamRepo(db)
	carRepo := pgRepo.NewCarRepo(db)
	memberRepo := pgRepo.NewMemberRepo(db)
	raceRepo := pgRepo.NewRaceRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	teamService := service.NewTeamService(teamRepo)
	carService := service.NewCarService(carRepo, teamRepo)
	memberService := service.NewMemberService(memberRepo, teamRepo, carRepo)
	raceService := service.NewRaceService(raceRepo, cacheRepo, cfg.Race.SimulatorConfig(), service.RaceOptions{
		NamePrefix:      cfg.Race.NamePrefix,
		Seed:            cfg.Race.Seed,
		ResultsCacheTTL: cfg.Race.ResultsCacheDuration(),
		LockTTL:         cfg.Race.LockDuration(),
	})

	// Лента заездов: хаб живет до отмены ctx
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)
	raceService.SetEventPublisher(handler.NewRaceFeed(wsHub))

	if cfg.Race.Seed != 0 {
		log.Printf("Внимание: фиксированное зерно %d, все заезды будут воспроизводимы", cfg.Race.Seed)
	}

	// Инициализируем обработчики
	teamHandler := handler.NewTeamHandler(teamService, carService, memberService)
	raceHandler := handler.NewRaceHandler(raceService)
	wsHandler := handler.NewWSHandler(wsHub, cfg.Server.AllowedOrigins)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if gin.Mode() == gin.ReleaseMode {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerRoutes(router, teamHandler, raceHandler, wsHandler, rateLimiter)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited properly")
}
