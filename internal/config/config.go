package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	UploadDir string `yaml:"upload_dir"`
	StorePath string `yaml:"store_path"`

	ChunkSize int `yaml:"chunk_size"`
	RAGTopK   int `yaml:"rag_top_k"`

	OllamaURL        string `yaml:"ollama_url"`
	OllamaGenModel   string `yaml:"ollama_gen_model"`
	OllamaEmbedModel string `yaml:"ollama_embed_model"`

	ModelCallsPerSecond   float64 `yaml:"model_calls_per_second"`
	ModelCallBurst        int     `yaml:"model_call_burst"`
	BreakerEnabled        bool    `yaml:"breaker_enabled"`
	BreakerMinRequests    int     `yaml:"breaker_min_requests"`
	BreakerFailureRatio   float64 `yaml:"breaker_failure_ratio"`
	BreakerTimeoutSeconds int     `yaml:"breaker_timeout_seconds"`
}

// Load builds configuration from defaults, an optional YAML file
// (CONFIG_FILE), and environment variable overrides, in that order.
func Load() Config {
	cfg := Config{
		APIPort:  "8080",
		LogLevel: "info",

		UploadDir: "./data/uploads",
		StorePath: "./data/text_chunks_and_embeddings.csv",

		ChunkSize: 10,
		RAGTopK:   3,

		OllamaURL:        "http://localhost:11434",
		OllamaGenModel:   "llama3.1:8b",
		OllamaEmbedModel: "nomic-embed-text",

		ModelCallsPerSecond:   0,
		ModelCallBurst:        1,
		BreakerEnabled:        true,
		BreakerMinRequests:    10,
		BreakerFailureRatio:   0.5,
		BreakerTimeoutSeconds: 30,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		applyFile(&cfg, path)
	}

	cfg.APIPort = mustEnv("API_PORT", cfg.APIPort)
	cfg.LogLevel = mustEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.UploadDir = mustEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.StorePath = mustEnv("STORE_PATH", cfg.StorePath)

	cfg.ChunkSize = mustEnvInt("CHUNK_SIZE", cfg.ChunkSize)
	cfg.RAGTopK = mustEnvInt("RAG_TOP_K", cfg.RAGTopK)

	cfg.OllamaURL = mustEnv("OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaGenModel = mustEnv("OLLAMA_GEN_MODEL", cfg.OllamaGenModel)
	cfg.OllamaEmbedModel = mustEnv("OLLAMA_EMBED_MODEL", cfg.OllamaEmbedModel)

	cfg.ModelCallsPerSecond = mustEnvFloat("MODEL_CALLS_PER_SECOND", cfg.ModelCallsPerSecond)
	cfg.ModelCallBurst = mustEnvInt("MODEL_CALL_BURST", cfg.ModelCallBurst)
	cfg.BreakerEnabled = mustEnvBool("BREAKER_ENABLED", cfg.BreakerEnabled)
	cfg.BreakerMinRequests = mustEnvInt("BREAKER_MIN_REQUESTS", cfg.BreakerMinRequests)
	cfg.BreakerFailureRatio = mustEnvFloat("BREAKER_FAILURE_RATIO", cfg.BreakerFailureRatio)
	cfg.BreakerTimeoutSeconds = mustEnvInt("BREAKER_TIMEOUT_SECONDS", cfg.BreakerTimeoutSeconds)

	return cfg
}

// applyFile overlays values from a YAML file; a missing or malformed file
// leaves the current values untouched.
func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = yaml.Unmarshal(data, cfg)
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
