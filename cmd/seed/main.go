package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"bomne-rental-backend/internal/config"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/repository/postgres"
	"bomne-rental-backend/internal/service"
)

// SeedDevice is one inventory entry in the seed file.
type SeedDevice struct {
	Name   string `yaml:"name"`
	Brand  string `yaml:"brand"`
	Status string `yaml:"status"`
}

// SeedData is the seed file layout.
type SeedData struct {
	Cameras []SeedDevice `yaml:"cameras"`
	Lenses  []SeedDevice `yaml:"lenses"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	schemaPath := flag.String("schema", "config/schema.sql", "Schema to apply before seeding (empty to skip)")
	seedPath := flag.String("inventory", "config/inventory.yaml", "Inventory seed file (empty to skip)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Connected to database", "host", cfg.Database.Host, "database", cfg.Database.Database)

	ctx := context.Background()

	if *schemaPath != "" {
		if err := applySchema(ctx, db, *schemaPath); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Schema applied", "file", *schemaPath)
	}

	if *seedPath != "" {
		data, err := readSeedFile(*seedPath)
		if err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}

		store := postgres.NewStore(db)
		n, err := seedInventory(ctx, service.NewInventoryService(store.DeviceRepository), data)
		if err != nil {
			log.Fatalf("Failed to seed inventory: %v", err)
		}
		logger.Info("Inventory seeded", "devices", n)
	}
}

func applySchema(ctx context.Context, db *sql.DB, path string) error {
	ddl, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(ddl))
	return err
}

func readSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSeed(raw)
}

func parseSeed(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &data, nil
}

// seedInventory adds every device in data and returns how many were stored.
func seedInventory(ctx context.Context, svc service.InventoryService, data *SeedData) (int, error) {
	count := 0
	add := func(kind domain.DeviceKind, devices []SeedDevice) error {
		for _, d := range devices {
			device := &domain.Device{Kind: kind, Name: d.Name, Brand: d.Brand, Status: d.Status}
			if err := svc.AddDevice(ctx, device); err != nil {
				return fmt.Errorf("add %s %q: %w", kind, d.Name, err)
			}
			logger.Debug("Device added", "kind", kind, "id", device.ID, "name", device.Name)
			count++
		}
		return nil
	}

	if err := add(domain.DeviceKindCamera, data.Cameras); err != nil {
		return count, err
	}
	if err := add(domain.DeviceKindLens, data.Lenses); err != nil {
		return count, err
	}
	return count, nil
}
