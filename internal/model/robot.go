package model

import "time"

// RobotStatus is the operating state of a robot. The set is a convention,
// the database does not constrain it.
type RobotStatus string

const (
	RobotStatusIdle     RobotStatus = "idle"
	RobotStatusMoving   RobotStatus = "moving"
	RobotStatusCharging RobotStatus = "charging"
	RobotStatusError    RobotStatus = "error"
)

// Robot represents an autonomous mobile robot in the fleet.
type Robot struct {
	ID          int64       `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:128;not null" json:"name"`
	Status      RobotStatus `gorm:"size:32;not null;default:idle" json:"status"`
	Battery     float64     `gorm:"not null;default:100" json:"battery"`
	LocationX   float64     `gorm:"column:location_x;not null;default:0" json:"location_x"`
	LocationY   float64     `gorm:"column:location_y;not null;default:0" json:"location_y"`
	LastUpdated time.Time   `gorm:"column:last_updated;autoCreateTime;autoUpdateTime" json:"last_updated"`
}
