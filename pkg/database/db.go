package database

import (
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	Debug    bool
}

var (
	DB   *gorm.DB
	once sync.Once
)

// Connect opens the shared connection once. Foreign keys are not emitted by
// AutoMigrate; bootstrap creates them after every table exists because
// books and categories reference each other.
func Connect(opts Options) (*gorm.DB, error) {
	var err error
	once.Do(func() {
		sslMode := opts.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			opts.Host,
			opts.User,
			opts.Password,
			opts.Name,
			opts.Port,
			sslMode,
		)

		logLevel := logger.Warn
		if opts.Debug {
			logLevel = logger.Info
		}

		var db *gorm.DB
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
			Logger:                                   logger.Default.LogMode(logLevel),
		})
		if err != nil {
			err = fmt.Errorf("failed to connect database: %w", err)
			return
		}

		slog.Info("database connected", slog.String("host", opts.Host), slog.String("name", opts.Name))
		DB = db
	})

	return DB, err
}
