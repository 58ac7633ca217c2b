package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dasalon/blog-backend/api"
	"github.com/dasalon/blog-backend/config"
	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	env := config.New()

	connStr := config.GetString(env, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(env, "DB_HOST", "localhost"),
			config.GetString(env, "DB_USER", "postgres"),
			config.GetString(env, "DB_PASSWORD", ""),
			config.GetString(env, "DB_NAME", "blog"),
			config.GetString(env, "DB_PORT", "5432"),
			config.GetString(env, "DB_SSLMODE", "disable"),
		)
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

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	// Seed the demo admin, default taxonomy and settings
	if config.GetBool(env, "SEED", false) {
		fmt.Println("Seeding database...")
		if err := services.Seed(currentDB); err != nil {
			fmt.Printf("Error seeding database: %v\n", err)
			os.Exit(1)
		}
	}

	// One-time migration from the legacy CMS API
	if legacyURL := config.GetString(env, "LEGACY_IMPORT_URL", ""); legacyURL != "" {
		fmt.Println("Importing blogs from legacy CMS...")
		importer := services.NewLegacyImporter(legacyURL, currentDB.UserRepo(), currentDB.PostRepo())
		if err := importer.ImportPosts(context.Background()); err != nil {
			fmt.Printf("Error importing legacy blogs: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Re-sync embedded author snapshots from current user records
	if config.GetBool(env, "BACKFILL_AUTHORS", false) {
		fmt.Println("Backfilling author snapshots...")
		updated, err := services.BackfillAuthorSnapshots(currentDB.UserRepo(), currentDB.PostRepo())
		if err != nil {
			fmt.Printf("Error backfilling author snapshots: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Backfilled %d posts\n", updated)
		return
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
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
