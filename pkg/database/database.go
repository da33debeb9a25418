package database

import (
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the configured database and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.Server.Mode)),
		// ownership rules are enforced in the service layer
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLitePath), gormCfg)
	case "mysql", "":
		db, err = gorm.Open(mysql.Open(mysqlDSN(&cfg.Database)), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Log.Info("Database migration completed")
	return db, nil
}

// OpenSQLite opens a SQLite database with a single connection and migrates it.
// Used by tests and local development.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.Module{},
		&model.SubModule{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.QuizResult{},
		&model.EnrollmentAnalytics{},
	)
}

func mysqlDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

func gormLogLevel(mode string) gormlogger.LogLevel {
	if mode == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
