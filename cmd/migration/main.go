package main

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/drivers/database"
	"flag"
	"log"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	direction := flag.String("direction", "up", "migration direction, up or down")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply, 0 applies all")
	flag.Parse()

	migrateDirection := migrate.Up
	switch *direction {
	case "up":
	case "down":
		migrateDirection = migrate.Down
	default:
		log.Fatalf("Unknown migration direction %q", *direction)
	}

	driverConfig := config.NewDriverConfig()
	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting working directory: %v", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, "internal/migration"),
	}

	n, err := migrate.ExecMax(db, "postgres", migrations, migrateDirection, *steps)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied %d migrations %s!\n", n, *direction)
}
