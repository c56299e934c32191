package container

import (
	"sync"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 数据存储服务
	redisService *services.RedisService

	// 业务服务
	employeeService   services.InterfaceEmployeeService
	deviceService     services.InterfaceDeviceService
	attendanceService services.InterfaceAttendanceService
	importService     services.InterfaceImportService
	reportService     services.InterfaceReportService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化Redis服务，连接不可用时只告警，缓存自动降级
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
		if err := c.redisService.Ping(); err != nil {
			config.Warning("Redis连接测试失败: %v，将不使用Redis缓存", err)
			c.redisService = nil
		}
	}

	// 初始化业务服务
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.deviceService = services.NewDeviceService(c.db, c.config)
	c.attendanceService = services.NewAttendanceService(c.db, c.config, c.deviceService)
	c.importService = services.NewImportService(c.db, c.config)
	c.reportService = services.NewReportService(c.db, c.config)
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetRedisService 获取Redis服务，不可用时返回nil
func (c *ServiceContainer) GetRedisService() *services.RedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}

// GetEmployeeService 获取员工服务
func (c *ServiceContainer) GetEmployeeService() services.InterfaceEmployeeService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.employeeService
}

// GetDeviceService 获取设备服务
func (c *ServiceContainer) GetDeviceService() services.InterfaceDeviceService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceService
}

// GetAttendanceService 获取考勤服务
func (c *ServiceContainer) GetAttendanceService() services.InterfaceAttendanceService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attendanceService
}

// GetImportService 获取批量导入服务
func (c *ServiceContainer) GetImportService() services.InterfaceImportService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.importService
}

// GetReportService 获取报表服务
func (c *ServiceContainer) GetReportService() services.InterfaceReportService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reportService
}
