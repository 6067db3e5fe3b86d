package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string

	StorageBackend string // file | postgres
	PostgresDSN    string
	DataDir        string

	AuthMode       string // local | remote
	AuthServiceURL string
	LocalAuthToken string

	ModelServiceURL string

	BlobBackend string // local | s3
	BlobDir     string
	BlobBaseURL string
	S3Bucket    string
	S3Region    string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:             getEnv("APP_ENV", "development"),
			Port:            getEnv("PORT", "5000"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
			PostgresDSN:     getEnv("POSTGRES_DSN", ""),
			DataDir:         getEnv("DATA_DIR", "data"),
			AuthMode:        getEnv("AUTH_MODE", "local"),
			AuthServiceURL:  getEnv("AUTH_SERVICE_URL", ""),
			LocalAuthToken:  getEnv("LOCAL_AUTH_TOKEN", "mock-token"),
			ModelServiceURL: getEnv("MODEL_SERVICE_URL", ""),
			BlobBackend:     getEnv("BLOB_BACKEND", "local"),
			BlobDir:         getEnv("BLOB_DIR", "data/blobs"),
			BlobBaseURL:     getEnv("BLOB_BASE_URL", "http://localhost:5000/blobs"),
			S3Bucket:        getEnv("S3_BUCKET", ""),
			S3Region:        getEnv("S3_REGION", ""),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.StorageBackend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.StorageBackend == "file" && c.DataDir == "" {
		return errors.New("File storage requires DATA_DIR to be set")
	}
	if c.AuthMode == "remote" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
	}
	if c.BlobBackend == "s3" && (c.S3Bucket == "" || c.S3Region == "") {
		return errors.New("S3_BUCKET and S3_REGION are required when BLOB_BACKEND=s3")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
