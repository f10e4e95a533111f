package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"gopkg.in/yaml.v3"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/cleanup"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/handlers"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/queue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/storage"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	Workers struct {
		Count int `yaml:"count"`
	} `yaml:"workers"`

	Storage struct {
		TempDir   string `yaml:"temp_dir"`
		OutputDir string `yaml:"output_dir"`
		Database  string `yaml:"database"`
	} `yaml:"storage"`

	Cleanup struct {
		IntervalMinutes int `yaml:"interval_minutes"`
		MaxAgeHours     int `yaml:"max_age_hours"`
	} `yaml:"cleanup"`

	GoogleDrive struct {
		CredentialsFile string `yaml:"credentials_file"`
		TokenFile       string `yaml:"token_file"`
		FolderName      string `yaml:"folder_name"`
	} `yaml:"google_drive"`

	Limits struct {
		MaxTextSizeMB int `yaml:"max_text_size_mb"`
	} `yaml:"limits"`
}

func main() {
	// Load configuration
	config, err := loadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure directories exist
	if err := cleanup.EnsureTempDirExists(config.Storage.TempDir); err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}
	if err := os.MkdirAll(config.Storage.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Custom logger setup
	logBuffer := &LogBuffer{
		lines: make([]string, 0, 1000),
	}
	multiWriter := io.MultiWriter(os.Stdout, logBuffer)
	log.SetOutput(multiWriter)

	// Initialize components
	log.Println("Initializing components...")

	// Local storage
	localStorage := storage.NewLocalStorage(config.Storage.OutputDir)

	// Google Drive client (optional - may fail if credentials not set up)
	var driveClient *storage.DriveClient
	if _, err := os.Stat(config.GoogleDrive.CredentialsFile); err == nil {
		driveClient, err = storage.NewDriveClient(
			config.GoogleDrive.CredentialsFile,
			config.GoogleDrive.TokenFile,
			config.GoogleDrive.FolderName,
		)
		if err != nil {
			log.Printf("WARNING: Google Drive not available: %v", err)
			log.Println("Conversations will only be saved locally")
			driveClient = nil
		} else {
			log.Println("Google Drive integration enabled")
		}
	} else {
		log.Println("Google Drive credentials not found - saving locally only")
	}

	// Database
	db, err := storage.NewMetadataDB(config.Storage.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Worker pool
	workerPool := queue.NewWorkerPool(
		config.Workers.Count,
		localStorage,
		driveClient,
		db,
	)
	workerPool.Start()

	// Cleanup scheduler
	cleanupScheduler := cleanup.NewScheduler(
		config.Storage.TempDir,
		config.Cleanup.IntervalMinutes,
		config.Cleanup.MaxAgeHours,
	)
	cleanupScheduler.Start()
	defer cleanupScheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: config.Limits.MaxTextSizeMB * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Initialize handlers
	segmentHandler := handlers.NewSegmentHandler(workerPool, config.Limits.MaxTextSizeMB)
	uploadHandler := handlers.NewUploadHandler(workerPool, config.Limits.MaxTextSizeMB)
	webImportHandler := handlers.NewWebImportHandler(workerPool)
	streamHandler := handlers.NewStreamHandler(workerPool)

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	app.Post("/segment", segmentHandler.Segment)
	app.Post("/classify", segmentHandler.Classify)
	app.Get("/features", segmentHandler.Features)
	app.Post("/paste", segmentHandler.Paste)
	app.Post("/upload", uploadHandler.Handle)
	app.Post("/import", webImportHandler.Handle)

	// WebSocket route
	app.Get("/ws/stream", websocket.New(streamHandler.Handle))

	// Get conversation metadata
	app.Get("/conversations", func(c *fiber.Ctx) error {
		limit := 50 // Default limit
		conversations, err := db.ListConversations(limit)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(conversations)
	})

	app.Get("/conversations/:id", func(c *fiber.Ctx) error {
		jobID := c.Params("id")

		conversation, err := db.GetConversation(jobID)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "Conversation not found"})
		}
		return c.JSON(conversation)
	})

	// Get stored turns
	app.Get("/conversations/:id/turns", func(c *fiber.Ctx) error {
		jobID := c.Params("id")

		turns, err := db.GetTurns(jobID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if len(turns) == 0 {
			return c.Status(404).JSON(fiber.Map{"error": "Conversation not found"})
		}
		return c.JSON(turns)
	})

	// Rebuild the original source text from stored turns
	app.Get("/conversations/:id/text", func(c *fiber.Ctx) error {
		jobID := c.Params("id")

		turns, err := db.GetTurns(jobID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if len(turns) == 0 {
			return c.Status(404).JSON(fiber.Map{"error": "Conversation not found"})
		}
		return c.SendString(dialogue.Reconstruct(turns))
	})

	// Get the sequence-validation corrections applied to a conversation
	app.Get("/conversations/:id/corrections", func(c *fiber.Ctx) error {
		jobID := c.Params("id")

		corrections, err := db.ListCorrections(jobID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(corrections)
	})

	// Get server logs
	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.GetLogs(),
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Println("Endpoints:")
	log.Println("   POST /segment       - Split pasted text into turns")
	log.Println("   POST /classify      - Score a single turn")
	log.Println("   GET  /features      - Feature descriptions")
	log.Println("   POST /paste         - Queue pasted text for processing")
	log.Println("   POST /upload        - Upload transcript file")
	log.Println("   POST /import        - Import shared conversation URL")
	log.Println("   GET  /ws/stream     - WebSocket text streaming")
	log.Println("   GET  /conversations - List stored conversations")
	log.Println("   GET  /conversations/:id/text - Rebuild source text")
	log.Println("   GET  /logs          - View server logs")
	log.Println("   GET  /health        - Health check")

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// LogBuffer captures logs in memory
type LogBuffer struct {
	lines []string
	mu    sync.Mutex
}

func (lb *LogBuffer) Write(p []byte) (n int, err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	// Append new line
	lb.lines = append(lb.lines, string(p))

	// Keep last 1000 lines
	if len(lb.lines) > 1000 {
		lb.lines = lb.lines[len(lb.lines)-1000:]
	}

	return len(p), nil
}

func (lb *LogBuffer) GetLogs() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	// Return copy of slice
	logs := make([]string, len(lb.lines))
	copy(logs, lb.lines)
	return logs
}

// loadConfig loads configuration from YAML file
func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
