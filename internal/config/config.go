package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth; auth is disabled when empty.
	APIKey string

	// Request limits
	MaxRequestBytes int64
	MaxUploadBytes  int64

	// Rendering defaults
	DefaultMarkdown bool

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("SCIRENDER_API_KEY"),

		MaxRequestBytes: envInt64("MAX_REQUEST_BYTES", 4*1024*1024),
		MaxUploadBytes:  envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultMarkdown: envBool("DEFAULT_MARKDOWN", true),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 4 * 1024 * 1024
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
