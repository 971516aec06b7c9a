package main

import (
	"github.com/wangruoshui6/meal-accounting-backend/internal/config" // Custom import path (Config)
	"github.com/wangruoshui6/meal-accounting-backend/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration against MySQL
}
