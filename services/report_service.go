package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"gorm.io/gorm"
)

// ReportQuery 报表查询条件。日期为空时取默认区间：
// 本月1号到今天。
type ReportQuery struct {
	StartDate  string
	EndDate    string
	Department string
	EmployeeID uint
}

// InterfaceReportService defines the report service interface
type InterfaceReportService interface {
	BuildReport(query ReportQuery) (*models.AttendanceReport, error)
}

// ReportService 把考勤事件汇总成按员工、按日的工时报表
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReportService 创建一个新的报表服务
func NewReportService(db *gorm.DB, cfg *config.Config) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
	}
}

// BuildReport 生成考勤报表。
// 先查询在职员工（支持部门和单人过滤），再查询区间内的考勤事件，
// 按员工、按日分组后统计工时。没有任何事件的员工也会出现在报表
// 中，汇总为全零。
func (s *ReportService) BuildReport(query ReportQuery) (*models.AttendanceReport, error) {
	startDate := query.StartDate
	endDate := query.EndDate
	now := time.Now()
	if startDate == "" {
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = now.Format("2006-01-02")
	}

	// 在职员工，支持过滤
	employeeQuery := s.DB.Where("active = ?", true)
	if query.Department != "" {
		employeeQuery = employeeQuery.Where("department = ?", query.Department)
	}
	if query.EmployeeID != 0 {
		employeeQuery = employeeQuery.Where("id = ?", query.EmployeeID)
	}

	var employees []models.Employee
	if err := employeeQuery.Order("id").Find(&employees).Error; err != nil {
		return nil, err
	}

	report := &models.AttendanceReport{
		StartDate: startDate,
		EndDate:   endDate,
		Data:      make([]*models.EmployeeReport, 0, len(employees)),
	}
	if len(employees) == 0 {
		return report, nil
	}

	byEmployee := make(map[uint]*models.EmployeeReport, len(employees))
	for i := range employees {
		emp := &employees[i]
		entry := &models.EmployeeReport{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			IDCard:     emp.IDCard,
			Department: emp.Department,
			Position:   emp.Position,
			Days:       make(map[string]*models.DailyAttendance),
		}
		byEmployee[emp.ID] = entry
		report.Data = append(report.Data, entry)
	}

	// 区间内的考勤事件。时间戳为定宽字符串，取前10位做日期比较。
	ids := make([]uint, 0, len(employees))
	for i := range employees {
		ids = append(ids, employees[i].ID)
	}

	var events []models.AttendanceRecord
	if err := s.DB.Where("employee_id IN ?", ids).
		Where("substr(timestamp, 1, 10) >= ?", startDate).
		Where("substr(timestamp, 1, 10) <= ?", endDate).
		Order("employee_id, timestamp").
		Find(&events).Error; err != nil {
		return nil, err
	}

	// 按员工、按日分组，再按方向划分进出
	for i := range events {
		event := &events[i]
		if event.EmployeeID == nil {
			continue
		}
		entry, ok := byEmployee[*event.EmployeeID]
		if !ok {
			continue
		}

		date, timeOfDay, ok := splitTimestamp(event.Timestamp)
		if !ok {
			continue
		}

		day, ok := entry.Days[date]
		if !ok {
			day = &models.DailyAttendance{
				In:  []models.ReportEvent{},
				Out: []models.ReportEvent{},
			}
			entry.Days[date] = day
		}

		punch := models.ReportEvent{Time: timeOfDay, Device: event.DeviceName}
		switch event.Direction {
		case string(models.DirectionIn):
			day.In = append(day.In, punch)
		case string(models.DirectionOut):
			day.Out = append(day.Out, punch)
		}
	}

	// 汇总每个员工的工时统计
	for _, entry := range report.Data {
		summarize(entry)
	}

	return report, nil
}

// splitTimestamp 把"YYYY-MM-DD HH:MM:SS"拆成日期和时间两部分，
// 不含空格的畸形时间戳整条跳过
func splitTimestamp(timestamp string) (date, timeOfDay string, ok bool) {
	parts := strings.SplitN(timestamp, " ", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// summarize 计算单个员工的日工时和汇总指标
func summarize(entry *models.EmployeeReport) {
	totalWorkHours := 0.0
	daysWithRecords := 0

	for _, day := range entry.Days {
		// 定宽HH:MM:SS，字符串排序即时间排序
		sort.SliceStable(day.In, func(i, j int) bool { return day.In[i].Time < day.In[j].Time })
		sort.SliceStable(day.Out, func(i, j int) bool { return day.Out[i].Time < day.Out[j].Time })

		// 同一天既有进又有出才计为有效出勤日
		if len(day.In) == 0 || len(day.Out) == 0 {
			continue
		}
		daysWithRecords++

		// 工时 = 最后一次出 - 第一次进。时间畸形或出早于进
		// （跨夜班次按畸形处理）时工时置空。
		firstIn, errIn := models.ParseTimeOfDay(day.In[0].Time)
		lastOut, errOut := models.ParseTimeOfDay(day.Out[len(day.Out)-1].Time)
		if errIn != nil || errOut != nil || lastOut.Before(firstIn) {
			continue
		}

		hours := lastOut.Sub(firstIn).Hours()
		rounded := round2(hours)
		day.WorkHours = &rounded
		totalWorkHours += hours
	}

	totalDays := len(entry.Days)
	entry.Summary = models.ReportSummary{
		TotalDays:       totalDays,
		DaysWithRecords: daysWithRecords,
	}
	if daysWithRecords > 0 {
		entry.Summary.AverageWorkHours = round2(totalWorkHours / float64(daysWithRecords))
	}
	if totalDays > 0 {
		entry.Summary.AttendanceRate = round2(float64(daysWithRecords) / float64(totalDays) * 100)
	}
}

// round2 四舍五入到两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
