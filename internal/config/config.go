package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the similarity tool
type Config struct {
	Log        LogConfig
	Similarity SimilarityConfig
	Analysis   AnalysisConfig
	Documents  DocumentsConfig
}

type LogConfig struct {
	Level        string
	Format       string
	ReportCaller bool
}

// SimilarityConfig controls scoring
type SimilarityConfig struct {
	Threshold float64
	Workers   int
}

// AnalysisConfig controls how text is reduced to stems
type AnalysisConfig struct {
	StopWordsFile string // empty means the built-in list
	Stemmer       string
}

// DocumentsConfig is the default corpus layout used by the CLI
type DocumentsConfig struct {
	Dir    string
	Source string
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Log: LogConfig{
			Level:        GetStringEnv("LOG_LEVEL", "info"),
			Format:       GetStringEnv("LOG_FORMAT", "text"),
			ReportCaller: GetBoolEnv("LOG_REPORT_CALLER", false),
		},
		Similarity: SimilarityConfig{
			Threshold: GetFloatEnv("SIMILARITY_THRESHOLD", 0.13),
			Workers:   GetIntEnv("SIMILARITY_WORKERS", 1),
		},
		Analysis: AnalysisConfig{
			StopWordsFile: GetStringEnv("STOPWORDS_FILE", ""),
			Stemmer:       GetStringEnv("STEMMER", "snowball"),
		},
		Documents: DocumentsConfig{
			Dir:    GetStringEnv("DOCUMENTS_DIR", "./poem"),
			Source: GetStringEnv("DOCUMENTS_SOURCE", "1"),
		},
	}
}

func (c *Config) Validate() error {
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold >= 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in [0, 1), got %v", c.Similarity.Threshold)
	}
	if c.Similarity.Workers < 1 {
		return fmt.Errorf("SIMILARITY_WORKERS must be at least 1, got %d", c.Similarity.Workers)
	}
	switch c.Analysis.Stemmer {
	case "snowball", "porter2":
	default:
		return fmt.Errorf("unknown STEMMER %q", c.Analysis.Stemmer)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
