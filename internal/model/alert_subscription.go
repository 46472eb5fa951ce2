package model

import "time"

// AlertSubscription holds the information for a browser push subscription.
// A subscription with no robots receives alerts for the whole fleet.
type AlertSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Associations
	Robots []*Robot `gorm:"many2many:subscription_robot_mapping;" json:"-"`
}
