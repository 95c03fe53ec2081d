package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"os"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	StorageDriverLocal  = "local"
	StorageDriverObject = "object"
)

type Config struct {
	CommandTimeout         time.Duration
	Container              string `json:"container" validate:"required"`
	Database               string `json:"database" validate:"required"`
	Debug                  bool
	Env                    string
	Host                   string `json:"host" validate:"required"`
	Password               string `json:"password"`
	Port                   string `json:"port" validate:"required,numeric"`
	SnapshotDirectory      string `json:"snapshot_directory" validate:"required"`
	StorageAccessKeyId     string
	StorageBucket          string
	StorageDriver          string `json:"storage_driver" validate:"oneof=local object"`
	StorageEndpoint        string
	StorageRegion          string
	StorageSecretAccessKey string
	User                   string `json:"user" validate:"required"`
}

func env(key string, defaultValue string) any {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}

	return defaultValue
}

func NewConfig() *Config {
	return &Config{
		CommandTimeout:         time.Duration(envInt("DBSNAP_COMMAND_TIMEOUT", 300)) * time.Second,
		Container:              env("DBSNAP_CONTAINER", "postgres").(string),
		Database:               env("DBSNAP_DATABASE", "postgres").(string),
		Debug:                  env("DBSNAP_DEBUG", "false") == "true",
		Env:                    env("DBSNAP_ENV", "production").(string),
		Host:                   env("DBSNAP_HOST", "localhost").(string),
		Password:               env("DBSNAP_PASSWORD", "").(string),
		Port:                   env("DBSNAP_PORT", "5432").(string),
		SnapshotDirectory:      env("DBSNAP_SNAPSHOT_DIR", "./snapshots").(string),
		StorageAccessKeyId:     env("DBSNAP_STORAGE_ACCESS_KEY_ID", "").(string),
		StorageBucket:          env("DBSNAP_STORAGE_BUCKET", "").(string),
		StorageDriver:          env("DBSNAP_STORAGE_DRIVER", StorageDriverLocal).(string),
		StorageEndpoint:        env("DBSNAP_STORAGE_ENDPOINT", "").(string),
		StorageRegion:          env("DBSNAP_STORAGE_REGION", "us-east-1").(string),
		StorageSecretAccessKey: env("DBSNAP_STORAGE_SECRET_ACCESS_KEY", "").(string),
		User:                   env("DBSNAP_USER", "postgres").(string),
	}
}

func envInt(key string, defaultValue int64) int64 {
	if os.Getenv(key) == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)

	if err != nil {
		return defaultValue
	}

	return value
}

// Generate a hash of the target identity so that lock files and log context
// do not carry credentials or raw connection details.
func TargetHash(c *Config) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%s:%s", c.Container, c.Host, c.Port, c.Database))

	return hex.EncodeToString(hash[:])
}
