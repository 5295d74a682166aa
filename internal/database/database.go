package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inandout-portal/internal/config"
	"inandout-portal/internal/models"
)

// Store wraps the relational database connection.
type Store struct {
	db *gorm.DB
}

// New opens a connection based on the configured database type.
func New(cfg config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "mysql":
		m := cfg.MySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			m.User, m.Password, m.Host, m.Port, m.Database)
		dialector = mysql.Open(dsn)
	case "postgres", "":
		p := cfg.Postgres
		sslMode := p.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			p.Host, p.Port, p.User, p.Password, p.Database, sslMode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewFromDB wraps an existing gorm.DB instance (used by tests).
func NewFromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm.DB instance
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (s *Store) InitSchema() error {
	return s.db.AutoMigrate(
		&models.Property{},
		&models.DeleteLog{},
	)
}
