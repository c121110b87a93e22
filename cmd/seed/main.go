package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	v1 "github.com/influencer-hub/dashboard-backend/v1"
	"github.com/influencer-hub/dashboard-backend/v1/models"
)

var categories = []string{
	"Gaming",
	"Lifestyle",
	"Fashion",
	"Beauty",
	"Food",
	"Travel",
	"Technology",
	"Sports",
	"Entertainment",
	"Education",
	"Health & Fitness",
	"Business",
}

var regions = []string{
	"Riyadh",
	"Jeddah",
	"Makkah",
	"Madinah",
	"Dammam",
	"Khobar",
	"Dhahran",
	"Taif",
	"Tabuk",
	"Buraidah",
	"Khamis Mushait",
	"Hail",
	"Najran",
	"Jubail",
	"Abha",
	"Yanbu",
	"Al-Ahsa",
	"Qatif",
	"Jizan",
	"Al-Kharj",
}

// Idempotent reference-data seeder: re-running never duplicates rows.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	slog.Info("Seeding reference data")

	db, err := v1.ConnectGormDB(v1.NewDatabaseConfig())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := v1.MigrateDB(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	for _, name := range categories {
		category := models.Category{CategoryID: "cat_" + uuid.New().String(), Name: name}
		result := db.Where(models.Category{Name: name}).
			Attrs(models.Category{CategoryID: category.CategoryID}).
			FirstOrCreate(&category)
		if result.Error != nil {
			slog.Error("Failed to seed category", "name", name, "error", result.Error)
			os.Exit(1)
		}
	}
	slog.Info("Categories seeded", "count", len(categories))

	for _, name := range regions {
		region := models.Region{RegionID: "reg_" + uuid.New().String(), Name: name}
		result := db.Where(models.Region{Name: name}).
			Attrs(models.Region{RegionID: region.RegionID}).
			FirstOrCreate(&region)
		if result.Error != nil {
			slog.Error("Failed to seed region", "name", name, "error", result.Error)
			os.Exit(1)
		}
	}
	slog.Info("Regions seeded", "count", len(regions))

	slog.Info("Database seeded successfully")
}
