package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared GORM handle every controller and service goes through.
var DB *gorm.DB

// InitDB connects to MySQL using the DB_* environment variables and wires
// the gorm logger into the shared log writer. The process cannot serve
// anything without a database, so a failed connect is fatal.
func InitDB() {
	var err error

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"),
	)

	// Full SQL logging is noisy in production; DEBUG_SQL=true re-enables it.
	logLevel := logger.Info
	if strings.ToLower(os.Getenv("ENVIRONMENT")) == "production" &&
		strings.ToLower(os.Getenv("DEBUG_SQL")) != "true" {
		logLevel = logger.Warn
	}

	config := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	DB, err = gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected successfully")
}
