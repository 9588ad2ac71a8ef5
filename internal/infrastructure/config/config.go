package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	Blob  BlobConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER,   default=workplace-api"`
	Audience string        `env:"JWT_AUDIENCE, default=workplace-clients"`
	TTL      time.Duration `env:"JWT_TTL,      default=10h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=workplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// BlobConfig points at an S3-compatible object store. PublicDomain is
// the origin media URLs are served from, which may differ from the
// API endpoint when a CDN fronts the bucket.
type BlobConfig struct {
	Endpoint     string `env:"BLOB_ENDPOINT"`
	Region       string `env:"BLOB_REGION,  default=auto"`
	Bucket       string `env:"BLOB_BUCKET,  default=workplace-media"`
	AccessKey    string `env:"BLOB_ACCESS_KEY"`
	SecretKey    string `env:"BLOB_SECRET_KEY"`
	PublicDomain string `env:"BLOB_PUBLIC_DOMAIN"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
