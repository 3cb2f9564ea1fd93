package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/shoestore/config"
	"github.com/shoestore/database"
	"github.com/shoestore/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		logrus.WithError(err).Fatal("Database connection check failed")
	}

	// Run migration if requested
	if *migrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			logrus.WithError(err).Fatal("Failed to migrate database")
		}
	}

	// Seed database if requested
	if *seed {
		if err := database.SeedData(database.DB); err != nil {
			logrus.WithError(err).Fatal("Failed to seed database")
		}
	}

	// Create and start web server
	server := web.NewServer(cfg)

	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			logrus.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logrus.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

func showHelp() {
	logrus.Info(`
Shoe Store Management Server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration and seed
  go run main.go -migrate -seed

For legacy Excel data import, use:
  go run cmd/import/main.go -products products.xlsx -orders orders.xlsx
`)
}
