package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gourab8389/blog-author/internal/aiservice"
	"github.com/gourab8389/blog-author/internal/assetservice"
	"github.com/gourab8389/blog-author/internal/blogservice"
	"github.com/gourab8389/blog-author/internal/common"
	"github.com/gourab8389/blog-author/internal/eventservice"
	"github.com/gourab8389/blog-author/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	aiClient    *aiservice.Client
	broker      *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(common.DBConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	}, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker. An unreachable broker only degrades
	// downstream cache freshness, so the service starts anyway.
	broker := common.NewMessageBroker(common.BrokerConfig{
		Host:     cfg.MQHost,
		Port:     cfg.MQPort,
		User:     cfg.MQUser,
		Password: cfg.MQPassword,
	})
	if err := broker.Connect(); err != nil {
		logger.Error("failed to connect to the message broker, continuing without it", slog.String("error", err.Error()))
	}
	defer broker.Close()

	// Initialize the image uploader
	uploader, err := assetservice.NewS3Uploader(assetservice.S3Config{
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Endpoint:        cfg.S3Endpoint,
		BaseURL:         cfg.S3BaseURL,
	})
	if err != nil {
		logger.Error("failed to configure the image uploader", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	events := eventservice.NewPublisher(broker, logger)

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db),
		blogService: blogservice.NewBlogService(db, cache, events, uploader),
		aiClient:    aiservice.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, logger),
		broker:      broker,
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
