package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"amr-fleet-monitor/config"
	"amr-fleet-monitor/internal/model"
)

// SampleRobots are inserted when the robots table is empty.
var SampleRobots = []model.Robot{
	{Name: "로봇 A", Status: model.RobotStatusMoving, Battery: 85, LocationX: 10, LocationY: 20},
	{Name: "로봇 B", Status: model.RobotStatusIdle, Battery: 100, LocationX: 0, LocationY: 0},
	{Name: "로봇 C", Status: model.RobotStatusCharging, Battery: 30, LocationX: 5, LocationY: 5},
	{Name: "로봇 D", Status: model.RobotStatusError, Battery: 12, LocationX: 40, LocationY: 15},
	{Name: "로봇 E", Status: model.RobotStatusMoving, Battery: 67, LocationX: 25, LocationY: 30},
}

// Init opens the configured database, runs migrations and seeds the robots
// table. The caller owns the returned handle and must close it.
func Init(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Info("running database migrations", zap.String("driver", cfg.Driver))
	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	seeded, err := Seed(db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if seeded > 0 {
		log.Info("seeded sample robots", zap.Int("count", seeded))
	}

	log.Info("database initialization complete")
	return db, nil
}

// Migrate creates the fleet tables if they do not exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Robot{},
		&model.Mission{},
		&model.AlertSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// Seed inserts SampleRobots when the robots table is empty and returns the
// number of rows written.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&model.Robot{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count robots: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	robots := make([]model.Robot, len(SampleRobots))
	copy(robots, SampleRobots)
	if err := db.Create(&robots).Error; err != nil {
		return 0, fmt.Errorf("failed to seed robots: %w", err)
	}
	return len(robots), nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		if err := ensureStorageDir(cfg.DSN); err != nil {
			return nil, err
		}
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ensureStorageDir creates the directory holding a SQLite file. In-memory
// and URI-style DSNs are left alone.
func ensureStorageDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return nil
}
