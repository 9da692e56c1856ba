package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	Env    string
	Icons  IconsConfig
	LLM    LLMConfig
	Export ExportConfig
}

type IconsConfig struct {
	// InventoryPath points at the textual inventory listing; empty means the
	// directory walk is the only source.
	InventoryPath string
	// Dir is the icons root on disk (assets/icons checkout).
	Dir string
}

type LLMConfig struct {
	// Backend selects the generation service: gemini, groq, or fake.
	Backend string
	Model   string
	// Timeout is the per-request generation budget. Large-model inference is
	// slow, so the default is multi-minute.
	Timeout time.Duration
}

type ExportConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8082", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:   *port,
		Env:    env,
		Icons:  loadIconsConfig(),
		LLM:    loadLLMConfig(),
		Export: loadExportConfig(env),
	}, nil
}

func loadIconsConfig() IconsConfig {
	return IconsConfig{
		InventoryPath: strings.TrimSpace(os.Getenv("ICON_INVENTORY_PATH")),
		Dir:           firstNonEmpty(strings.TrimSpace(os.Getenv("ICON_DIR")), "assets/icons"),
	}
}

func loadLLMConfig() LLMConfig {
	timeout := 4 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("LLM_TIMEOUT_SECONDS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	return LLMConfig{
		Backend: firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_BACKEND")), "gemini"),
		Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), "gemini-2.5-flash"),
		Timeout: timeout,
	}
}

func loadExportConfig(env string) ExportConfig {
	endpoint := resolveExportEndpoint(env)
	return ExportConfig{
		Enabled:   strings.EqualFold(strings.TrimSpace(env), "local") || endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_BUCKET")), "archcanvas-exports"),
		UseSSL:    resolveExportUseSSL(env),
	}
}

func resolveExportEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_MINIO_ENDPOINT")), "minio:9000")
	}
	return strings.TrimSpace(os.Getenv("EXPORT_S3_ENDPOINT"))
}

func resolveExportUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("EXPORT_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
