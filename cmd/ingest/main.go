package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"medsumm/docs"
	"medsumm/internal/config"
	"medsumm/internal/extract"
	"medsumm/internal/generation"
	handlers "medsumm/internal/http/handler"
	"medsumm/internal/http/server"
	"medsumm/internal/logger"
	"medsumm/internal/ner"
	"medsumm/internal/otel"
	"medsumm/internal/service"
)

// @title Document Ingestion API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	shutdownTracing, err := otel.Init(context.Background(), "medsumm-ingest", zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

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
	recognizer := newRecognizer(cfg.NLP, zl)

	svc := service.NewDocumentService(extractor, recognizer, gen, zl)

	app, err := server.New(server.Options{Name: "medsumm-ingest", BodyLimit: cfg.UploadMaxBytes}, zl, reg)
	if err != nil {
		zl.Fatal("failed to build http app", zap.Error(err))
	}

	// Register HTTP routes with injected service
	handlers.RegisterIngestRoutes(app, svc)
	handlers.RegisterOpsRoutes(app, reg, docs.SwaggerInfoingest)

	if err := server.Run(app, ":"+cfg.IngestPort, 10*time.Second, zl); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

// newRecognizer prefers the remote model and falls back to the built-in lexicon.
func newRecognizer(cfg config.NLPConfig, log *zap.Logger) ner.Recognizer {
	if cfg.NERURL == "" {
		log.Info("ner_backend", zap.String("backend", "lexicon"))
		return ner.NewLexicon()
	}
	r, err := ner.NewHTTP(cfg.NERURL, cfg.Timeout())
	if err != nil {
		log.Warn("ner_backend_unavailable", zap.Error(err))
		return ner.NewLexicon()
	}
	log.Info("ner_backend", zap.String("backend", "http"), zap.String("url", cfg.NERURL))
	return r
}
