package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config.env")
	if err != nil {
		t.Fatalf("Failed to create temporary config file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	configData := []byte(`
PORT=:8080
ENVIRONMENT=development
VERSION=1.0.0
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_PORT=5671
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
S3_REGION=eu-west-1
S3_BUCKET=blog-images
S3_ACCESS_KEY=accesskey
S3_SECRET_KEY=secretkey
AI_API_URL=https://api.example.com/v1
AI_API_KEY=ai-key
AI_MODEL=test-model
`)
	if _, err := tempFile.Write(configData); err != nil {
		t.Fatalf("Failed to write test configuration to temporary file: %v", err)
	}

	config, err := loadConfig(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, ":8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "5432", config.DBPort)
	assert.Equal(t, "testuser", config.DBUser)
	assert.Equal(t, "testpassword", config.DBPassword)
	assert.Equal(t, "testdb", config.DBName)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "5671", config.MQPort)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)
	assert.Equal(t, "eu-west-1", config.S3Region)
	assert.Equal(t, "blog-images", config.S3Bucket)
	assert.Equal(t, "accesskey", config.S3AccessKey)
	assert.Equal(t, "secretkey", config.S3SecretKey)
	assert.Equal(t, "https://api.example.com/v1", config.AIBaseURL)
	assert.Equal(t, "ai-key", config.AIAPIKey)
	assert.Equal(t, "test-model", config.AIModel)
}

func TestLoadConfigBrokerDefaults(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config.env")
	if err != nil {
		t.Fatalf("Failed to create temporary config file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write([]byte("ENVIRONMENT=development\n")); err != nil {
		t.Fatalf("Failed to write test configuration to temporary file: %v", err)
	}

	config, err := loadConfig(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// local development fallback only
	assert.Equal(t, "localhost", config.MQHost)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "admin", config.MQUser)
	assert.Equal(t, "admin123", config.MQPassword)
}
