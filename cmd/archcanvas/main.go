package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"archcanvas/internal/icons"
	"archcanvas/internal/llm"
	"archcanvas/internal/pipeline"
	"archcanvas/internal/providers"
)

func main() {
	descPath := flag.String("desc", "", "path to the architecture description file")
	iconDir := flag.String("icons", "assets/icons", "icons root directory")
	inventory := flag.String("inventory", "", "optional textual inventory listing")
	backend := flag.String("backend", "gemini", "generation backend: gemini, groq, fake")
	model := flag.String("model", "gemini-2.5-flash", "model id")
	outDir := flag.String("out", "out", "output directory")
	providerList := flag.String("providers", "", "comma-separated provider override (skips detection)")
	flag.Parse()
	if *descPath == "" {
		log.Fatal("--desc is required")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	_ = godotenv.Load()

	desc, err := os.ReadFile(*descPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	cli := newClient(ctx, *backend, *model)
	defer cli.Close()

	known := providers.Known()
	builder := icons.Builder{Known: known, GeneralDir: filepath.Join(*iconDir, icons.GeneralProvider)}
	var ix *icons.Index
	if *inventory != "" {
		b, rerr := os.ReadFile(*inventory)
		if rerr != nil {
			log.Fatal(rerr)
		}
		ix, err = builder.Build(icons.TreeSource{Text: string(b), Known: known})
	} else {
		ix, err = builder.Build(icons.DirSource{Dir: *iconDir, Known: known})
	}
	if err != nil {
		log.Printf("icon inventory degraded: %v", err)
	}
	log.Printf("indexed %d icons", ix.Len())

	var overrides []string
	if *providerList != "" {
		for _, p := range strings.Split(*providerList, ",") {
			if p = strings.TrimSpace(p); p != "" {
				overrides = append(overrides, p)
			}
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, 4*time.Minute)
	defer cancel()

	gen := &pipeline.Generator{
		LLM:    cli,
		Index:  ix,
		Notify: func(stage string) { log.Printf("stage: %s", stage) },
	}
	out, err := gen.Run(runCtx, pipeline.GenerateIn{Description: string(desc), Providers: overrides})
	if err != nil {
		log.Fatal(err)
	}

	writeJSON(*outDir, "diagram.json", out.Diagram)
	writeJSON(*outDir, "report.json", out.Report)
	log.Printf("generation completed → %s (fixed=%d invalid=%d unresolved=%d)",
		*outDir, out.Report.Fixed, out.Report.Invalid, len(out.Report.Unresolved))
}

func newClient(ctx context.Context, backend, model string) llm.Client {
	var (
		cli llm.Client
		err error
	)
	switch backend {
	case "groq":
		cli, err = llm.NewGroqClient("", model)
	case "fake":
		cli = llm.NewFakeClient()
	default:
		if os.Getenv("GEMINI_API_KEY") == "" {
			log.Fatal("GEMINI_API_KEY is not set")
		}
		cli, err = llm.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), model)
	}
	if err != nil {
		log.Fatal(err)
	}
	return llm.Wrap(cli, llm.Retry(3, 500*time.Millisecond))
}

func writeJSON(dir, name string, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		log.Fatal(err)
	}
}
