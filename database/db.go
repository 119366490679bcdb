package database

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"roombooking-backend/models"
)

var DB *gorm.DB

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "db"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), envOr("DB_PORT", "5432"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Println(err)
		panic("Could not connect to database")
	}
}

// AutoMigrate applies table/column migrations for all models plus the
// Postgres-only constraints from Migrate.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Hotel{}, &models.Floor{}, &models.Room{},
		&models.Service{}, &models.Booking{},
		&models.Invoice{}, &models.InvoiceItem{},
		&models.ServiceBill{}, &models.ServiceBillItem{},
		&models.Payment{}, &models.IdempotencyKey{},
	); err != nil {
		panic(fmt.Sprintf("automigrate failed: %v", err))
	}
	if err := Migrate(DB); err != nil {
		panic(fmt.Sprintf("constraint migration failed: %v", err))
	}
}

// GetDB returns the *gorm.DB for the current request: the per-request
// transaction opened by middlewares.RequestTx when present, otherwise the
// shared handle.
func GetDB(c *fiber.Ctx) *gorm.DB {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx
		}
	}
	return DB
}
