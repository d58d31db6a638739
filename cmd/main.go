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

	"gocapacity/config"
	"gocapacity/internal/api/capacity"
	"gocapacity/internal/api/report"
	"gocapacity/internal/api/router"
	"gocapacity/internal/api/user"
	"gocapacity/internal/api/warehouse"
	"gocapacity/internal/pkg/cache"
	"gocapacity/internal/pkg/database"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/metrics"
	"gocapacity/internal/pkg/token"
	"gocapacity/internal/repository/reportrepo"
	"gocapacity/internal/repository/userrepo"
	"gocapacity/internal/repository/warehouserepo"
	"gocapacity/internal/scheduler"
	"gocapacity/internal/service/capacityservice"
	"gocapacity/internal/service/reportingservice"
	"gocapacity/internal/service/userservice"
	"gocapacity/internal/service/warehouseservice"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	appLog := logger.NewLogger(cfg.LogLevel)
	defer logger.Sync(appLog)
	appLog.Info("Inicializando serviço GoCapacity...", map[string]interface{}{"env": cfg.Environment})

	// 1. Infraestrutura
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.PoolConfig{})
	cancel()
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		// O cache é opcional: sem Redis, snapshot e rate limit ficam em memória.
		appLog.Warn("Redis indisponível, usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		redisClient.Close()
		cacheClient = cache.NewMemoryClient()
	} else {
		defer redisClient.Close()
		cacheClient = redisClient
		appLog.Info("Conexão Redis estabelecida.", nil)
	}

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 2. Repository -> Service -> Handler
	warehouseRepo := warehouserepo.NewWarehouseRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, logger.Named(appLog, "warehouserepo"))
	warehouseSvc := warehouseservice.NewService(warehouseRepo, logger.Named(appLog, "warehouseservice"))
	capacitySvc := capacityservice.NewService(warehouseSvc, logger.Named(appLog, "capacityservice"))

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, logger.Named(appLog, "userrepo"))
	userSvc := userservice.NewService(userRepo, tokenSvc, logger.Named(appLog, "userservice"))

	deps := router.Deps{
		WarehouseHandler: warehouse.NewHandler(warehouseSvc, appLog),
		CapacityHandler:  capacity.NewHandler(capacitySvc, cfg.CapacityMaxRangeDays, appLog),
		UserHandler:      user.NewHandler(userSvc, appLog),
		TokenService:     tokenSvc,
		Cache:            cacheClient,
		RateLimit:        cfg.RateLimitMaxRequests,
		RatePeriod:       cfg.RateLimitPeriod,
		Logger:           logger.Named(appLog, "http"),
	}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}

	// 3. Relatórios (opcional, exige MongoDB)
	var sched *scheduler.Scheduler
	if cfg.ReportsEnabled() {
		mctx, mcancel := context.WithTimeout(context.Background(), 10*time.Second)
		reportRepo, err := reportrepo.NewReportRepository(mctx, cfg.MongoURI, cfg.MongoDBName)
		mcancel()
		if err != nil {
			appLog.Fatal("Falha ao conectar ao MongoDB.", err)
		}
		defer func() {
			cctx, ccancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer ccancel()
			if err := reportRepo.Close(cctx); err != nil {
				appLog.Error("Falha ao fechar conexão MongoDB.", err)
			}
		}()

		reportingSvc := reportingservice.NewService(warehouseSvc, reportRepo, cfg.ReportHorizonDays, logger.Named(appLog, "reporting"))
		deps.ReportHandler = report.NewHandler(reportingSvc, appLog)

		sched = scheduler.NewScheduler(reportingSvc, cfg.ReportCronSchedule, logger.Named(appLog, "scheduler"))
		if err := sched.Start(); err != nil {
			appLog.Fatal("Expressão cron inválida em REPORT_CRON_SCHEDULE.", err)
		}
	} else {
		appLog.Info("MONGODB_URI não definido: relatórios de utilização desativados.", nil)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoCapacity ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
