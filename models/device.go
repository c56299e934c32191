package models

import (
	"time"
)

// DeviceStatus represents the status of a face recognition device
type DeviceStatus string

const (
	DeviceStatusActive  DeviceStatus = "active"
	DeviceStatusOffline DeviceStatus = "offline"
)

// Device represents face recognition access devices. A device row is
// upserted from every event that carries its device id.
type Device struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	DeviceID   string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"device_id"`
	Name       string       `gorm:"type:varchar(100)" json:"name"`
	Location   string       `gorm:"type:varchar(100)" json:"location"`
	Status     DeviceStatus `gorm:"type:varchar(20);default:'offline'" json:"status"`
	LastActive string       `gorm:"type:varchar(19)" json:"last_active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
