package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"gorm.io/gorm"
)

// ImportResult 一次批量导入的统计结果
type ImportResult struct {
	EmployeesCreated int `json:"employees_created"`
	EmployeesSkipped int `json:"employees_skipped"`
	RecordsInserted  int `json:"records_inserted"`
	RecordsSkipped   int `json:"records_skipped"`
}

// InterfaceImportService defines the bulk import service interface
type InterfaceImportService interface {
	ImportFromFile(path string) (*ImportResult, error)
	ImportRecords(records []models.BatchRecord) (*ImportResult, error)
}

// ImportService 批量导入识别记录。整个导入对同一数据源可以安全地
// 重复执行：员工和考勤记录的插入都有显式的存在性检查，重跑不会
// 产生重复行。
type ImportService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewImportService 创建一个新的批量导入服务
func NewImportService(db *gorm.DB, cfg *config.Config) InterfaceImportService {
	return &ImportService{
		DB:     db,
		Config: cfg,
	}
}

// 首次出现的员工身份信息
type employeeIdentity struct {
	personID string
	idCard   string
	name     string
}

// 1 ImportFromFile 从批量导出文件导入。文件不存在不视为错误，
// 返回nil结果让调用方跳过。
func (s *ImportService) ImportFromFile(path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取导入文件失败: %w", err)
	}

	var records []models.BatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("解析导入文件失败: %w", err)
	}

	return s.ImportRecords(records)
}

// 2 ImportRecords 两遍扫描导入一批识别记录。
// 第一遍按首次出现收集员工身份（同一personId后续出现的idCard和
// 姓名会被忽略），第二遍逐条规范化并插入考勤记录。单条记录的
// 问题只记日志跳过，不中断整个批次。
func (s *ImportService) ImportRecords(records []models.BatchRecord) (*ImportResult, error) {
	result := &ImportResult{}

	// 第一遍：personId -> 首次出现的身份信息，保持首见顺序
	seen := make(map[string]*employeeIdentity)
	var order []string
	for i := range records {
		personID := records[i].PersonID.String()
		if personID == "" {
			continue
		}
		if _, ok := seen[personID]; !ok {
			seen[personID] = &employeeIdentity{
				personID: personID,
				idCard:   records[i].IDCard.String(),
				name:     records[i].PersonName.String(),
			}
			order = append(order, personID)
		}
	}

	// 插入未见过的员工，已存在的静默跳过（幂等）
	for _, personID := range order {
		identity := seen[personID]
		created, err := s.insertEmployeeIfAbsent(identity)
		if err != nil {
			config.Warning("导入员工 %s 失败: %v", personID, err)
			continue
		}
		if created {
			result.EmployeesCreated++
		} else {
			result.EmployeesSkipped++
		}
	}

	// 第二遍：规范化并插入考勤记录
	for i := range records {
		record := NormalizeBatchRecord(&records[i])

		// 关联员工，匹配不到时保留NULL链接
		if record.PersonID != "" {
			var employee models.Employee
			err := s.DB.Where("person_id = ?", record.PersonID).First(&employee).Error
			if err == nil {
				record.EmployeeID = &employee.ID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				config.Warning("查询员工 %s 失败: %v", record.PersonID, err)
			}
		}

		// 幂等检查：相同RecordID的记录只保留第一条
		if record.RecordID != "" {
			var count int64
			if err := s.DB.Model(&models.AttendanceRecord{}).
				Where("record_id = ?", record.RecordID).
				Count(&count).Error; err != nil {
				config.Warning("检查记录 %s 失败: %v", record.RecordID, err)
				continue
			}
			if count > 0 {
				result.RecordsSkipped++
				continue
			}
		}

		if err := s.DB.Create(record).Error; err != nil {
			config.Warning("导入考勤记录 %s 失败: %v", record.RecordID, err)
			continue
		}
		result.RecordsInserted++
	}

	return result, nil
}

// insertEmployeeIfAbsent 显式存在性检查后插入员工，
// person_id或id_card已存在时跳过
func (s *ImportService) insertEmployeeIfAbsent(identity *employeeIdentity) (bool, error) {
	var count int64
	query := s.DB.Model(&models.Employee{}).Where("person_id = ?", identity.personID)
	if identity.idCard != "" {
		query = query.Or("id_card = ?", identity.idCard)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	employee := models.Employee{
		PersonID: identity.personID,
		IDCard:   identity.idCard,
		Name:     identity.name,
		Active:   true,
	}
	if err := s.DB.Create(&employee).Error; err != nil {
		return false, err
	}
	return true, nil
}
