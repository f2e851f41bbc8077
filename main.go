package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arcfolio/backend/api"
	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/pdf"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{Logger: newLogger}

	var db *gorm.DB
	var err error

	dbType := getEnv("DB_TYPE", "sqlite")
	fmt.Printf("DB_TYPE: %s\n", dbType)
	switch dbType {
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("DATABASE_HOST", "localhost"),
			getEnv("DATABASE_USER", "postgres"),
			getEnv("DATABASE_PASSWORD", ""),
			getEnv("DATABASE_NAME", "arcfolio"),
			getEnv("DATABASE_PORT", "5432"),
			getEnv("DATABASE_SSLMODE", "disable"),
		)
		fmt.Println("Connecting to Postgres database...")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), gormConfig)
	case "sqlite":
		path := getEnv("DATABASE_PATH", "arcfolio.db")
		fmt.Printf("Opening SQLite database at %s...\n", path)
		db, err = gorm.Open(sqlite.Open(path), gormConfig)
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}
	if err := database.Bootstrap(db); err != nil {
		fmt.Printf("Error bootstrapping singleton records: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	uploadsDir := getEnv("UPLOADS_DIR", "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		fmt.Printf("Error creating uploads directory: %v\n", err)
		os.Exit(1)
	}

	// The PDF exporter loads this process's own print routes.
	port := getEnv("PORT", "8080")
	baseURL := getEnv("PRINT_BASE_URL", "http://127.0.0.1:"+port)
	maxConcurrent := getEnvInt("PDF_MAX_CONCURRENT", 2)
	pdfTimeout := time.Duration(getEnvInt("PDF_TIMEOUT_SECONDS", 120)) * time.Second
	generator := pdf.NewGenerator(currentDB, pdf.Chromium{}, uploadsDir, baseURL, int64(maxConcurrent), pdfTimeout)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, generator)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
