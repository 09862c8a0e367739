package config

import (
	"log"
	"os"

	"landscape-supply-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "landscape_supply_super_secret_2024"))

type Config struct {
	Port          string
	DBPath        string
	AdminUsername string
	AdminPassword string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads settings from .env or the system environment
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// env may have changed since package init
	JWTSecret = []byte(getEnv("JWT_SECRET", "landscape_supply_super_secret_2024"))

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "landscape_supply.db"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// Migrate runs auto-migration for all models; tests reuse it on
// in-memory databases
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerAddress{},
		&models.Product{},
		&models.Job{},
		&models.JobItem{},
		&models.JobStatusHistory{},
	)
}

func InitDB(cfg *Config) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedAdmin(cfg)

	log.Println("✅ Database connected and migrated successfully")
}

// seedAdmin creates the bootstrap admin account when the users table is
// empty, so a fresh install can log in and create the rest of the staff
func seedAdmin(cfg *Config) {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	password := cfg.AdminPassword
	if password == "" {
		password = "changeme"
		log.Println("⚠️  ADMIN_PASSWORD not set, bootstrap admin uses the default password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash bootstrap admin password:", err)
	}

	admin := models.User{
		Name:         "Administrator",
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed bootstrap admin:", err)
	}
	log.Printf("✅ Bootstrap admin '%s' created", admin.Username)
}
