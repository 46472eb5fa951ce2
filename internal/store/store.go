package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"amr-fleet-monitor/internal/model"
)

// ErrSubscriptionNotFound is returned when no subscription matches an endpoint.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ErrUnknownRobot is returned when a subscription scope names a robot that
// does not exist. Nothing is stored in that case.
var ErrUnknownRobot = errors.New("unknown robot id")

// Store defines the interface for all database operations.
type Store interface {
	ListRobots(ctx context.Context) ([]model.Robot, error)
	ListMissions(ctx context.Context) ([]model.Mission, error)
	FleetStats(ctx context.Context) (model.FleetStats, error)

	GetSubscription(ctx context.Context, endpoint string) (model.AlertSubscription, error)
	PutSubscription(ctx context.Context, sub model.AlertSubscription, robotIDs []int64) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForRobot(ctx context.Context, robotID int64) ([]model.AlertSubscription, error)

	DB() *gorm.DB
	Close() error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open connection. The store takes ownership of db and
// releases it on Close.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connection pool.
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// ListRobots returns every row of the robots table in storage order.
func (s *gormStore) ListRobots(ctx context.Context) ([]model.Robot, error) {
	robots := make([]model.Robot, 0)
	if err := s.db.WithContext(ctx).Find(&robots).Error; err != nil {
		return nil, &StorageError{Op: "list robots", Err: err}
	}
	return robots, nil
}

// ListMissions returns every row of the missions table in storage order.
func (s *gormStore) ListMissions(ctx context.Context) ([]model.Mission, error) {
	missions := make([]model.Mission, 0)
	if err := s.db.WithContext(ctx).Find(&missions).Error; err != nil {
		return nil, &StorageError{Op: "list missions", Err: err}
	}
	return missions, nil
}

// FleetStats aggregates robot counts per status and the average battery.
func (s *gormStore) FleetStats(ctx context.Context) (model.FleetStats, error) {
	type aggRow struct {
		Status     model.RobotStatus
		Count      int64
		BatterySum float64
	}
	var rows []aggRow
	if err := s.db.WithContext(ctx).
		Model(&model.Robot{}).
		Select("status AS status, COUNT(*) AS count, COALESCE(SUM(battery), 0) AS battery_sum").
		Group("status").
		Scan(&rows).Error; err != nil {
		return model.FleetStats{}, &StorageError{Op: "aggregate robots", Err: err}
	}

	var stats model.FleetStats
	var batterySum float64
	for _, r := range rows {
		stats.Total += r.Count
		batterySum += r.BatterySum
		switch r.Status {
		case model.RobotStatusIdle:
			stats.Idle += r.Count
		case model.RobotStatusMoving:
			stats.Moving += r.Count
		case model.RobotStatusCharging:
			stats.Charging += r.Count
		case model.RobotStatusError:
			stats.Error += r.Count
		}
	}
	if stats.Total > 0 {
		stats.AverageBattery = batterySum / float64(stats.Total)
	}
	return stats, nil
}

// GetSubscription loads a subscription with its robot scope.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (model.AlertSubscription, error) {
	var sub model.AlertSubscription
	err := s.db.WithContext(ctx).Preload("Robots").First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sub, ErrSubscriptionNotFound
	}
	if err != nil {
		return sub, &StorageError{Op: "get subscription", Err: err}
	}
	return sub, nil
}

// PutSubscription creates or replaces a subscription and its robot scope.
func (s *gormStore) PutSubscription(ctx context.Context, sub model.AlertSubscription, robotIDs []int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&sub).Error; err != nil {
			return err
		}

		ids := uniqueIDs(robotIDs)
		robots := make([]model.Robot, 0, len(ids))
		if len(ids) > 0 {
			if err := tx.Find(&robots, ids).Error; err != nil {
				return err
			}
			if len(robots) != len(ids) {
				return ErrUnknownRobot
			}
		}

		return tx.Model(&sub).Association("Robots").Replace(&robots)
	})
	if errors.Is(err, ErrUnknownRobot) {
		return err
	}
	if err != nil {
		return &StorageError{Op: "put subscription", Err: err}
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DeleteSubscription removes a subscription and its robot scope.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := model.AlertSubscription{Endpoint: endpoint}
		if err := tx.Model(&sub).Association("Robots").Clear(); err != nil {
			return err
		}
		return tx.Delete(&sub).Error
	})
	if err != nil {
		return &StorageError{Op: "delete subscription", Err: err}
	}
	return nil
}

// SubscriptionsForRobot returns subscriptions scoped to robotID plus the
// fleet-wide ones (no robot scope at all).
func (s *gormStore) SubscriptionsForRobot(ctx context.Context, robotID int64) ([]model.AlertSubscription, error) {
	scoped := s.db.Table("subscription_robot_mapping").
		Select("alert_subscription_endpoint").
		Where("robot_id = ?", robotID)
	anyScope := s.db.Table("subscription_robot_mapping").
		Select("alert_subscription_endpoint")

	var subs []model.AlertSubscription
	if err := s.db.WithContext(ctx).
		Where("endpoint IN (?) OR endpoint NOT IN (?)", scoped, anyScope).
		Find(&subs).Error; err != nil {
		return nil, &StorageError{Op: "list subscriptions", Err: err}
	}
	return subs, nil
}
