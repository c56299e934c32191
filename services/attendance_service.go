package services

import (
	"errors"
	"time"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManualAttendanceInput 手工补录考勤的输入
type ManualAttendanceInput struct {
	EmployeeID   uint
	Timestamp    string
	Direction    string
	VerifyStatus string
	DeviceName   string
}

// InterfaceAttendanceService defines the attendance service interface
type InterfaceAttendanceService interface {
	ProcessRecPush(msg *models.RecPushMessage) (*models.AttendanceRecord, bool, error)
	AddManualRecord(input *ManualAttendanceInput) (*models.AttendanceRecord, error)
	GetAllRecords(query models.PaginationQuery) ([]models.AttendanceRecordView, int64, error)
	GetRecordByID(id uint) (*models.AttendanceRecord, error)
	GetRecordsByEmployee(employeeID uint, query models.PaginationQuery) ([]models.AttendanceRecordView, int64, error)
	GetRecordsByDate(date string, query models.PaginationQuery) ([]models.AttendanceRecordView, int64, error)
}

// AttendanceService 提供考勤记录的写入和查询服务
type AttendanceService struct {
	DB            *gorm.DB
	Config        *config.Config
	DeviceService InterfaceDeviceService
}

// NewAttendanceService 创建一个新的考勤服务
func NewAttendanceService(db *gorm.DB, cfg *config.Config, deviceService InterfaceDeviceService) InterfaceAttendanceService {
	return &AttendanceService{
		DB:            db,
		Config:        cfg,
		DeviceService: deviceService,
	}
}

// 考勤列表查询的公共select，关联员工展示字段
const attendanceViewSelect = "attendance_records.id, attendance_records.employee_id, attendance_records.person_id, " +
	"attendance_records.record_id, attendance_records.timestamp, attendance_records.direction, " +
	"attendance_records.verify_status, attendance_records.device_name, attendance_records.open_door_way, " +
	"employees.name as employee_name, employees.id_card, employees.department, employees.position"

// 1 ProcessRecPush 处理一条人脸识别事件。operator必须为RecPush；
// 相同RecordID的事件只入库一次（应用层幂等检查），返回值第二项
// 表示本次调用是否真正插入了新记录。
func (s *AttendanceService) ProcessRecPush(msg *models.RecPushMessage) (*models.AttendanceRecord, bool, error) {
	if msg == nil || msg.Operator != models.OperatorRecPush {
		return nil, false, NewValidationError("无效的MQTT数据格式")
	}

	info := ParseRecEventInfo(msg.Info)
	record := NormalizeRecEvent(info, msg.Info)

	// 幂等检查：相同的设备侧记录ID只保留第一条
	if record.RecordID != "" {
		var existing models.AttendanceRecord
		err := s.DB.Where("record_id = ?", record.RecordID).First(&existing).Error
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	// 关联员工，匹配不到时保留NULL链接
	if record.PersonID != "" {
		var employee models.Employee
		if err := s.DB.Where("person_id = ?", record.PersonID).First(&employee).Error; err == nil {
			record.EmployeeID = &employee.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	if err := s.DB.Create(record).Error; err != nil {
		return nil, false, err
	}

	// 刷新设备目录；失败不影响已入库的记录
	if err := s.DeviceService.UpsertFromEvent(info.DeviceID.String(), info.FacesluiceName.String()); err != nil {
		config.Warning("更新设备信息失败: %v", err)
	}

	return record, true, nil
}

// 2 AddManualRecord 手工补录一条考勤记录，员工必须已存在
func (s *AttendanceService) AddManualRecord(input *ManualAttendanceInput) (*models.AttendanceRecord, error) {
	if input.EmployeeID == 0 || input.Timestamp == "" || input.Direction == "" {
		return nil, NewValidationError("缺少必填字段: employee_id, timestamp, direction")
	}

	var employee models.Employee
	if err := s.DB.First(&employee, input.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("指定ID的员工不存在")
		}
		return nil, err
	}

	verifyStatus := input.VerifyStatus
	if verifyStatus == "" {
		verifyStatus = "Manual"
	}
	deviceName := input.DeviceName
	if deviceName == "" {
		deviceName = "Manual Input"
	}

	record := &models.AttendanceRecord{
		EmployeeID:   &employee.ID,
		PersonID:     employee.PersonID,
		RecordID:     "manual-" + uuid.New().String(),
		Timestamp:    input.Timestamp,
		Direction:    input.Direction,
		VerifyStatus: verifyStatus,
		DeviceName:   deviceName,
	}

	if err := s.DB.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// 3 GetAllRecords 获取所有考勤记录，按时间倒序分页
func (s *AttendanceService) GetAllRecords(query models.PaginationQuery) ([]models.AttendanceRecordView, int64, error) {
	var total int64
	if err := s.DB.Model(&models.AttendanceRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.AttendanceRecordView
	if err := s.DB.Table("attendance_records").
		Select(attendanceViewSelect).
		Joins("LEFT JOIN employees ON attendance_records.employee_id = employees.id").
		Order("attendance_records.timestamp DESC").
		Limit(query.PerPage).Offset(query.Offset()).
		Scan(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// 4 GetRecordByID 根据ID获取单条考勤记录，含原始负载和员工信息
func (s *AttendanceService) GetRecordByID(id uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := s.DB.Preload("Employee").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("考勤记录不存在")
		}
		return nil, err
	}
	return &record, nil
}

// 5 GetRecordsByEmployee 获取指定员工的考勤记录，按时间倒序分页
func (s *AttendanceService) GetRecordsByEmployee(employeeID uint, query models.PaginationQuery) ([]models.AttendanceRecordView, int64, error) {
	// 检查员工是否存在
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, NewNotFoundError("员工不存在")
		}
		return nil, 0, err
	}

	var total int64
	if err := s.DB.Model(&models.AttendanceRecord{}).Where("employee_id = ?", employeeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.AttendanceRecordView
	if err := s.DB.Table("attendance_records").
		Select(attendanceViewSelect).
		Joins("LEFT JOIN employees ON attendance_records.employee_id = employees.id").
		Where("attendance_records.employee_id = ?", employeeID).
		Order("attendance_records.timestamp DESC").
		Limit(query.PerPage).Offset(query.Offset()).
		Scan(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// 6 GetRecordsByDate 获取指定日期的考勤记录，按时间正序分页。
// date必须是已经校验过的YYYY-MM-DD字符串。
func (s *AttendanceService) GetRecordsByDate(date string, query models.PaginationQuery) ([]models.AttendanceRecordView, int64, error) {
	// 二次校验，防止未经控制器的调用传入脏数据
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, 0, NewValidationError("无效的日期格式，应为YYYY-MM-DD")
	}

	var total int64
	if err := s.DB.Model(&models.AttendanceRecord{}).
		Where("substr(timestamp, 1, 10) = ?", date).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.AttendanceRecordView
	if err := s.DB.Table("attendance_records").
		Select(attendanceViewSelect).
		Joins("LEFT JOIN employees ON attendance_records.employee_id = employees.id").
		Where("substr(attendance_records.timestamp, 1, 10) = ?", date).
		Order("attendance_records.timestamp ASC").
		Limit(query.PerPage).Offset(query.Offset()).
		Scan(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
