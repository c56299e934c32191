package services

import (
	"errors"
	"time"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"gorm.io/gorm"
)

// InterfaceDeviceService defines the device service interface
type InterfaceDeviceService interface {
	GetAllDevices() ([]models.Device, error)
	UpsertFromEvent(deviceID, name string) error
}

// DeviceService 提供人脸闸机设备目录相关的服务
type DeviceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDeviceService 创建一个新的设备服务
func NewDeviceService(db *gorm.DB, cfg *config.Config) InterfaceDeviceService {
	return &DeviceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllDevices 获取所有设备，按名称排序
func (s *DeviceService) GetAllDevices() ([]models.Device, error) {
	var devices []models.Device
	if err := s.DB.Order("name").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// 2 UpsertFromEvent 根据事件中的设备信息更新设备目录。
// 每条携带deviceID的事件都会刷新设备的状态和最后活跃时间。
func (s *DeviceService) UpsertFromEvent(deviceID, name string) error {
	if deviceID == "" {
		return nil
	}
	if name == "" {
		name = "Unknown Device"
	}

	now := time.Now().Format("2006-01-02 15:04:05")

	var device models.Device
	err := s.DB.Where("device_id = ?", deviceID).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		device = models.Device{
			DeviceID:   deviceID,
			Name:       name,
			Status:     models.DeviceStatusActive,
			LastActive: now,
		}
		return s.DB.Create(&device).Error
	}
	if err != nil {
		return err
	}

	return s.DB.Model(&device).Updates(map[string]interface{}{
		"name":        name,
		"status":      models.DeviceStatusActive,
		"last_active": now,
	}).Error
}
