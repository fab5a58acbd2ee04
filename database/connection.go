package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASS"`
	Name     string `envconfig:"DB_NAME" default:"shopbot"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// Connect opens the PostgreSQL connection.
func Connect(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	logx.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("database connected")
	return db, nil
}
