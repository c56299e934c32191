package models

import (
	"time"
)

// Direction classifies an access event
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// AttendanceRecord represents one face recognition access event. The
// timestamp is supplied by the device as a fixed-width
// "YYYY-MM-DD HH:MM:SS" string and is advisory: it may be empty or
// malformed and is stored as received.
type AttendanceRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   *uint     `json:"employee_id"` // 未匹配到员工时为NULL
	PersonID     string    `gorm:"type:varchar(64);index" json:"person_id"`
	RecordID     string    `gorm:"type:varchar(100);index" json:"record_id"` // 设备侧记录ID，应用层幂等键
	Timestamp    string    `gorm:"type:varchar(19);index" json:"timestamp"`
	Direction    string    `gorm:"type:varchar(20)" json:"direction"`
	VerifyStatus string    `gorm:"type:varchar(20)" json:"verify_status"`
	DeviceName   string    `gorm:"type:varchar(100)" json:"device_name"`
	OpenDoorWay  string    `gorm:"type:varchar(20)" json:"open_door_way"`
	PushType     string    `gorm:"type:varchar(20)" json:"push_type"`
	RawData      string    `gorm:"type:text" json:"raw_data,omitempty"` // 原始info负载，逐字节保留
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// AttendanceRecordView is the list-endpoint row shape: a record joined
// with the owning employee's display fields.
type AttendanceRecordView struct {
	ID           uint   `json:"id"`
	EmployeeID   *uint  `json:"employee_id"`
	PersonID     string `json:"person_id"`
	RecordID     string `json:"record_id"`
	Timestamp    string `json:"timestamp"`
	Direction    string `json:"direction"`
	VerifyStatus string `json:"verify_status"`
	DeviceName   string `json:"device_name"`
	OpenDoorWay  string `json:"open_door_way"`
	EmployeeName string `json:"employee_name"`
	IDCard       string `json:"id_card"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
}
