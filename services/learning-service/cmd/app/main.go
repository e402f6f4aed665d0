package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/config"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/application/usecase"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/infrastructure/cache"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/infrastructure/repository"
	grpc_server "github.com/waste3d/courseplatform-api/services/learning-service/internal/transport/grpc"
)

func main() {
	// 1. Конфиг и логгер
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer log.Sync()

	// 2. База и миграции
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to DB", "error", err)
	}
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		log.Fatal("failed to migrate DB", "error", err)
	}

	// 3. Redis под кеш структуры курсов
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
	}

	// 4. Слои
	courseRepo := repository.NewCourseRepository(db, log)
	progressRepo := repository.NewProgressRepository(db, log)
	transactionRepo := repository.NewTransactionRepository(db, log)
	structureCache := cache.NewStructureCache(rdb, cfg.CourseCacheTTL)

	courseService := usecase.NewCourseService(courseRepo, structureCache, log)
	progressService := usecase.NewProgressService(progressRepo, courseRepo, courseService, log)
	enrollmentService := usecase.NewEnrollmentService(courseRepo, transactionRepo, progressService, log)

	if cfg.SeedDemo {
		seeded, err := seedDemoCourse(context.Background(), courseRepo, courseService)
		if err != nil {
			log.Fatal("failed to seed demo course", "error", err)
		}
		if seeded {
			log.Info("demo course created")
		}
	}

	// 5. gRPC сервер
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen", "port", cfg.GRPCPort, "error", err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpc_server.RecoveryInterceptor(log),
		grpc_server.LoggingInterceptor(log),
		grpc_server.TimeoutInterceptor(cfg.RequestTimeout),
	))
	learningpb.RegisterLearningServiceServer(grpcServer, grpc_server.NewLearningServer(courseService, progressService, enrollmentService, log))

	log.Info("learning service is running", "port", cfg.GRPCPort)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("failed to serve", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down server")
	grpcServer.GracefulStop()
	_ = rdb.Close()
}
