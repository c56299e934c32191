package models

import (
	"time"
)

// Employee represents one person known to the face recognition devices.
// A row is created on first sight of a new person id and is never hard
// deleted; deactivation is done through the Active flag.
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PersonID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"person_id"`
	IDCard     string    `gorm:"type:varchar(64);uniqueIndex" json:"id_card"`
	Name       string    `gorm:"type:varchar(100)" json:"name"`
	Department string    `gorm:"type:varchar(100)" json:"department"`
	Position   string    `gorm:"type:varchar(100)" json:"position"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	AttendanceRecords []AttendanceRecord `gorm:"foreignKey:EmployeeID" json:"attendance_records,omitempty"`
}
