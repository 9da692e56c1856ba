package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"archcanvas/internal/config"
	"archcanvas/internal/export"
	"archcanvas/internal/handler"
	"archcanvas/internal/icons"
	"archcanvas/internal/llm"
	"archcanvas/internal/pipeline"
	"archcanvas/internal/providers"
	"archcanvas/internal/server"
	"archcanvas/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	ix := buildIconIndex(cfg)
	log.Printf("icon index ready: %d entries across %d providers", ix.Len(), len(ix.Providers()))

	cli, err := newLLMClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	defer cli.Close()

	var exports *export.S3Store
	if cfg.Export.Enabled {
		exports, err = export.NewS3Store(export.S3Config{
			Endpoint:  cfg.Export.Endpoint,
			Region:    cfg.Export.Region,
			AccessKey: cfg.Export.AccessKey,
			SecretKey: cfg.Export.SecretKey,
			Bucket:    cfg.Export.Bucket,
			UseSSL:    cfg.Export.UseSSL,
		})
		if err != nil {
			log.Printf("export store disabled: %v", err)
			exports = nil
		}
	}

	st := store.NewFromEnv("data/diagrams.json")
	defer st.Close()

	h := handler.New(cli, ix, st, exports, pipeline.NewStatusBroker(), cfg.LLM.Timeout)
	srv := server.New(cfg.Port, server.NewMux(h))

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// buildIconIndex prefers the textual inventory when configured and falls
// back to walking the icons directory. A missing inventory is recoverable:
// the server starts with whatever the walk finds, or an empty index.
func buildIconIndex(cfg *config.Config) *icons.Index {
	known := providers.Known()
	builder := icons.Builder{Known: known, GeneralDir: cfg.Icons.Dir + "/" + icons.GeneralProvider}

	if cfg.Icons.InventoryPath != "" {
		b, err := os.ReadFile(cfg.Icons.InventoryPath)
		if err == nil {
			ix, berr := builder.Build(icons.TreeSource{Text: string(b), Known: known})
			if berr != nil {
				log.Printf("inventory parse degraded: %v", berr)
			}
			return ix
		}
		log.Printf("inventory %s unreadable (%v), falling back to directory walk", cfg.Icons.InventoryPath, err)
	}

	ix, err := builder.Build(icons.DirSource{Dir: cfg.Icons.Dir, Known: known})
	if err != nil {
		log.Printf("icon directory walk degraded: %v", err)
	}
	return ix
}

func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	var (
		cli llm.Client
		err error
	)
	switch cfg.LLM.Backend {
	case "groq":
		cli, err = llm.NewGroqClient("", cfg.LLM.Model)
	case "fake":
		cli = llm.NewFakeClient()
	default:
		cli, err = llm.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLM.Model)
	}
	if err != nil {
		return nil, err
	}
	return llm.Wrap(cli,
		llm.WithLogging(nil),
		llm.Retry(3, 500*time.Millisecond),
		llm.RateLimit(envFloat("LLM_RPS"), envInt("LLM_BURST")),
	), nil
}

func envFloat(key string) float64 {
	f, _ := strconv.ParseFloat(os.Getenv(key), 64)
	return f
}

func envInt(key string) int {
	n, _ := strconv.Atoi(os.Getenv(key))
	return n
}
