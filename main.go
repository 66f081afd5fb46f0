package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"knowledgebase/api"
	"knowledgebase/archive"
	"knowledgebase/config"
	"knowledgebase/extract"
	"knowledgebase/ingest"
	"knowledgebase/store"
	"knowledgebase/summarize"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()

	st := store.NewFromConfig(cfg)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := st.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
	}
	cancel()

	if cfg.CohereAPIKey == "" {
		log.Println("Warning: COHERE_API_KEY not set; summarization calls will fail")
	}
	summarizer := summarize.New(summarize.NewCohereCompleter(cfg.CohereAPIKey, cfg.SummaryModel, cfg.SummaryMaxTokens))
	extractor := extract.New()
	pipeline := ingest.New(extractor, summarizer, st)

	archiver, err := archive.NewFromConfig(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 archive: %v (archiving disabled)", err)
	}
	if archiver == nil {
		log.Println("S3 archive not configured; skipping uploads")
	}

	server := api.NewServer(st, pipeline, extractor, summarizer, archiver, cfg.DevOwnerID)
	r := api.NewRouter(server)

	log.Printf("Starting API server on %s", cfg.Addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/articles")
	log.Println("  POST   /api/articles")
	log.Println("  GET    /api/articles/:id")
	log.Println("  PATCH  /api/articles/:id")
	log.Println("  DELETE /api/articles/:id")
	log.Println("  POST   /api/ingest")
	log.Println("  POST   /api/extract")
	log.Println("  POST   /api/summarize")
	log.Println("  GET    /api/settings")
	log.Println("  PATCH  /api/settings")
	log.Println("  GET    /api/export")
	log.Println("  GET    /api/feed")

	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
