package model

import "time"

// Mission is a unit of work, optionally owned by a robot. RobotID is not
// checked against the robots table.
type Mission struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	RobotID     *int64     `gorm:"index" json:"robot_id"`
	MissionType string     `gorm:"size:64" json:"mission_type"`
	Status      string     `gorm:"size:32;not null;default:pending" json:"status"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	StartX      float64    `json:"start_x"`
	StartY      float64    `json:"start_y"`
	TargetX     float64    `json:"target_x"`
	TargetY     float64    `json:"target_y"`
}
