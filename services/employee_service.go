package services

import (
	"errors"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"gorm.io/gorm"
)

// EmployeeUpdate 员工可更新字段的白名单，nil表示不修改
type EmployeeUpdate struct {
	Name       *string
	Department *string
	Position   *string
	Active     *bool
}

// InterfaceEmployeeService defines the employee service interface
type InterfaceEmployeeService interface {
	GetAllEmployees() ([]models.Employee, error)
	GetEmployeeByID(id uint) (*models.Employee, []models.AttendanceRecord, error)
	CreateEmployee(employee *models.Employee) error
	UpdateEmployee(id uint, update *EmployeeUpdate) error
}

// EmployeeService 提供员工目录相关的服务
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService 创建一个新的员工服务
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllEmployees 获取所有在职员工，按姓名排序
func (s *EmployeeService) GetAllEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.DB.Where("active = ?", true).Order("name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// 2 GetEmployeeByID 根据ID获取员工及其最近10条考勤记录
func (s *EmployeeService) GetEmployeeByID(id uint) (*models.Employee, []models.AttendanceRecord, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NewNotFoundError("员工不存在")
		}
		return nil, nil, err
	}

	// 最近考勤记录
	var recent []models.AttendanceRecord
	if err := s.DB.Where("employee_id = ?", id).
		Order("timestamp DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		return nil, nil, err
	}

	return &employee, recent, nil
}

// 3 CreateEmployee 创建新员工。用显式存在性检查代替唯一约束冲突，
// person_id或id_card重复时返回ConflictError。
func (s *EmployeeService) CreateEmployee(employee *models.Employee) error {
	var count int64
	query := s.DB.Model(&models.Employee{}).Where("person_id = ?", employee.PersonID)
	if employee.IDCard != "" {
		query = query.Or("id_card = ?", employee.IDCard)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return NewConflictError("相同person_id或id_card的员工已存在")
	}

	employee.Active = true
	return s.DB.Create(employee).Error
}

// 4 UpdateEmployee 更新员工信息，只允许修改白名单字段。
// 员工从不硬删除，停用通过Active标志完成。
func (s *EmployeeService) UpdateEmployee(id uint, update *EmployeeUpdate) error {
	var employee models.Employee
	if err := s.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("员工不存在")
		}
		return err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Department != nil {
		updates["department"] = *update.Department
	}
	if update.Position != nil {
		updates["position"] = *update.Position
	}
	if update.Active != nil {
		updates["active"] = *update.Active
	}

	if len(updates) == 0 {
		return NewValidationError("没有可更新的字段")
	}

	return s.DB.Model(&employee).Updates(updates).Error
}
