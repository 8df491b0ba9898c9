package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ems-hq/ems-backend-go/internal/config"
	"github.com/ems-hq/ems-backend-go/internal/fixtures"
	"github.com/ems-hq/ems-backend-go/internal/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := fixtures.Seed(context.Background(), db); err != nil {
		log.Fatal("Seeding failed: ", err)
	}

	fmt.Printf("Seeded demo data. All accounts use password %q.\n", fixtures.DefaultPassword)
}
