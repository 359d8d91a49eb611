package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glow/internal/config"
	"glow/internal/handler"
	"glow/internal/infra/db"
	infraRepo "glow/internal/infra/repository"
	"glow/internal/pkg/logger"
	"glow/internal/pkg/tracing"
	"glow/internal/server"
	"glow/internal/usecase"

	"github.com/google/uuid"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	if err := config.LoadDotEnv(".env", "../.env"); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New("glow-api", cfg.LogLevel, cfg.IsDev())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init("glow-api", cfg.TracingEnabled)
	if err != nil {
		log.Fatal().Err(err).Msg("init tracing")
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if cfg.SeedDemo {
		seeded, err := db.SeedDemo(ctx, gormDB)
		if err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
		log.Info().Bool("seeded", seeded).Msg("demo data")
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, idGen, clock)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, idGen, clock)

	//Server起動
	srv := server.New(log, server.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogUC),
		Review:    handler.NewReviewHandler(reviewUC),
		Favorite:  handler.NewFavoriteHandler(favoriteUC),
		ReviewRPS: cfg.ReviewRateLimit,
		Burst:     cfg.ReviewRateBurst,
	})

	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
