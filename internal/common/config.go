package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Batch   BatchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Pdftotext  string
	DocTimeout time.Duration
}

// BatchConfig holds batch-processing configuration
type BatchConfig struct {
	MaxFiles  int
	MaxFileMB int
	Workers   int
	Strict    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Extract: ExtractConfig{
			Pdftotext:  getEnv("PDFTOTEXT_BIN", "pdftotext"),
			DocTimeout: getEnvAsDuration("DOC_TIMEOUT", 30*time.Second),
		},
		Batch: BatchConfig{
			MaxFiles:  getEnvAsInt("BATCH_MAX_FILES", 100),
			MaxFileMB: getEnvAsInt("BATCH_MAX_FILE_MB", 25),
			Workers:   getEnvAsInt("BATCH_WORKERS", 1),
			Strict:    getEnvAsBool("BATCH_STRICT", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = 1
	}
	return NewValidator().
		Field("HTTP_ADDR", c.Server.HTTPAddr, Required).
		Field("PDFTOTEXT_BIN", c.Extract.Pdftotext, Required).
		Field("BATCH_MAX_FILES", c.Batch.MaxFiles, Positive).
		Field("BATCH_MAX_FILE_MB", c.Batch.MaxFileMB, Positive).
		Error()
}
