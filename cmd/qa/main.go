package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"medsumm/docs"
	"medsumm/internal/config"
	"medsumm/internal/content"
	"medsumm/internal/extract"
	"medsumm/internal/generation"
	handlers "medsumm/internal/http/handler"
	"medsumm/internal/http/server"
	"medsumm/internal/logger"
	"medsumm/internal/otel"
	"medsumm/internal/repository"
	"medsumm/internal/repository/memory"
	recordredis "medsumm/internal/repository/redis"
	"medsumm/internal/service"
)

// @title Patient Q&A API
// @version 2.1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, "medsumm-qa", zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	store, err := newRecordStore(ctx, cfg.Records)
	if err != nil {
		zl.Fatal("failed to initialize record store", zap.Error(err))
	}

	fetcher, err := newFetcher(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize content source", zap.Error(err))
	}

	reg := server.NewRegistry()
	gen, err := generation.New(cfg.Generation, zl)
	if err != nil {
		zl.Fatal("failed to initialize generator", zap.Error(err))
	}
	gen, err = generation.Instrument(gen, cfg.Generation.Provider, reg)
	if err != nil {
		zl.Fatal("failed to register generation metrics", zap.Error(err))
	}

	extractor := extract.New(extract.NewPDFReader(), extract.NewHTTPPredictor(cfg.NLP.OCRURL, cfg.NLP.Timeout()), zl)

	svc := service.NewPatientService(store, fetcher, gen, extractor, service.PatientOptions{
		DefaultPatientID: cfg.SamplePatientID,
		MaxRecordChars:   cfg.Records.MaxChars,
	}, zl)

	loaded, err := svc.LoadSample(ctx, cfg.SampleRecord)
	if err != nil {
		zl.Warn("sample_record_not_loaded", zap.String("path", cfg.SampleRecord), zap.Error(err))
	} else {
		zl.Info("sample_record", zap.String("path", cfg.SampleRecord), zap.Bool("loaded", loaded))
	}

	app, err := server.New(server.Options{Name: "medsumm-qa"}, zl, reg)
	if err != nil {
		zl.Fatal("failed to build http app", zap.Error(err))
	}

	// Register HTTP routes with injected service
	handlers.RegisterQARoutes(app, svc, generation.DisplayName(cfg.Generation.Provider))
	handlers.RegisterOpsRoutes(app, reg, docs.SwaggerInfoqa)

	if err := server.Run(app, ":"+cfg.QAPort, 10*time.Second, zl); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func newRecordStore(ctx context.Context, cfg config.RecordStoreConfig) (repository.RecordStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return memory.NewRecordMemory(cfg.MaxEntries, cfg.TTL()), nil
	case "redis":
		client, err := recordredis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return recordredis.NewRecordRedis(client, cfg.KeyPrefix, cfg.TTL()), nil
	default:
		return nil, fmt.Errorf("unsupported record store: %s", cfg.Backend)
	}
}

func newFetcher(cfg *config.AppConfig, log *zap.Logger) (content.Fetcher, error) {
	switch cfg.Content.Source {
	case "", "gateway":
		return content.NewGateway(cfg.Content.GatewayURL, cfg.Content.Timeout(), log), nil
	case "minio":
		return content.NewMinIO(cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("unsupported content source: %s", cfg.Content.Source)
	}
}
