package models

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DBConfig holds the database connection settings read from the environment.
type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// LoadDBConfig reads the connection settings from the process environment.
func LoadDBConfig() DBConfig {
	cfg := DBConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Name:     os.Getenv("DB_NAME"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	return cfg
}

// DSN renders the PostgreSQL connection string. Encrypted transport is required.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=require",
		c.Host, c.Port, c.Name, c.User, c.Password)
}

// InitDB opens the database connection: PostgreSQL when DB_HOST is set,
// SQLite for local development.
func InitDB(cfg DBConfig) (*gorm.DB, error) {
	if cfg.Host != "" {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open("zentroq.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
