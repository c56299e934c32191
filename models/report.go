package models

// ReportEvent is a single in or out punch within a report day
type ReportEvent struct {
	Time   string `json:"time"`
	Device string `json:"device"`
}

// DailyAttendance groups one employee's punches on one calendar date.
// WorkHours is null when the day has no usable in/out pair.
type DailyAttendance struct {
	In        []ReportEvent `json:"in"`
	Out       []ReportEvent `json:"out"`
	WorkHours *float64      `json:"work_hours"`
}

// ReportSummary aggregates one employee's attendance over the report range
type ReportSummary struct {
	TotalDays        int     `json:"total_days"`
	DaysWithRecords  int     `json:"days_with_records"`
	AverageWorkHours float64 `json:"average_work_hours"`
	AttendanceRate   float64 `json:"attendance_rate"`
}

// EmployeeReport is the per-employee section of the attendance report
type EmployeeReport struct {
	EmployeeID uint                        `json:"employee_id"`
	Name       string                      `json:"name"`
	IDCard     string                      `json:"id_card"`
	Department string                      `json:"department"`
	Position   string                      `json:"position"`
	Days       map[string]*DailyAttendance `json:"days"`
	Summary    ReportSummary               `json:"summary"`
}

// AttendanceReport is the full report response
type AttendanceReport struct {
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Data      []*EmployeeReport `json:"data"`
}
