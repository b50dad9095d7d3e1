package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	PlantsDir string
	ImagesDir string
	OutputDir string
	DBPath    string
	VocabPath string

	ReviewOKThreshold  float64
	ReviewThreshold    float64
	ReviewGapThreshold float64

	EnrichRateLimitRPS int
	EnrichTimeoutMs    int

	WikipediaBaseURL     string
	GBIFBaseURL          string
	ArafloraBaseURL      string
	GrowTropicalsBaseURL string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		PlantsDir: getEnv("PLANTS_DIR", filepath.Join(cwd, "plants")),
		ImagesDir: getEnv("IMAGES_DIR", filepath.Join(cwd, "images")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "enrich.db")),
		VocabPath: getEnv("VOCAB_PATH", ""),

		ReviewOKThreshold:  getEnvFloat("REVIEW_OK_THRESHOLD", 0.90),
		ReviewThreshold:    getEnvFloat("REVIEW_THRESHOLD", 0.72),
		ReviewGapThreshold: getEnvFloat("REVIEW_GAP_THRESHOLD", 0.08),

		EnrichRateLimitRPS: getEnvInt("ENRICH_RATE_LIMIT_RPS", 1),
		EnrichTimeoutMs:    getEnvInt("ENRICH_TIMEOUT_MS", 30000),

		WikipediaBaseURL:     getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org/api/rest_v1"),
		GBIFBaseURL:          getEnv("GBIF_BASE_URL", "https://api.gbif.org/v1"),
		ArafloraBaseURL:      getEnv("ARAFLORA_BASE_URL", "https://www.araflora.com"),
		GrowTropicalsBaseURL: getEnv("GROWTROPICALS_BASE_URL", "https://growtropicals.com"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
