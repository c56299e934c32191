package services

import (
	"testing"

	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeviceService(t *testing.T) (InterfaceDeviceService, *DeviceService) {
	t.Helper()

	db := newTestDB(t)
	service := NewDeviceService(db, newTestConfig())
	return service, service.(*DeviceService)
}

func TestUpsertFromEventCreatesDevice(t *testing.T) {
	service, impl := newDeviceService(t)

	require.NoError(t, service.UpsertFromEvent("gate-01", "东门闸机"))

	var device models.Device
	require.NoError(t, impl.DB.Where("device_id = ?", "gate-01").First(&device).Error)
	assert.Equal(t, "东门闸机", device.Name)
	assert.Equal(t, models.DeviceStatusActive, device.Status)
	assert.NotEmpty(t, device.LastActive)
}

func TestUpsertFromEventUpdatesExisting(t *testing.T) {
	service, impl := newDeviceService(t)

	require.NoError(t, service.UpsertFromEvent("gate-01", "东门闸机"))
	require.NoError(t, service.UpsertFromEvent("gate-01", "东门闸机-改名"))

	var count int64
	require.NoError(t, impl.DB.Model(&models.Device{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var device models.Device
	require.NoError(t, impl.DB.Where("device_id = ?", "gate-01").First(&device).Error)
	assert.Equal(t, "东门闸机-改名", device.Name)
}

func TestUpsertFromEventEmptyDeviceID(t *testing.T) {
	service, impl := newDeviceService(t)

	// 空设备ID是无操作
	require.NoError(t, service.UpsertFromEvent("", "未知"))

	var count int64
	require.NoError(t, impl.DB.Model(&models.Device{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpsertFromEventDefaultsName(t *testing.T) {
	service, impl := newDeviceService(t)

	require.NoError(t, service.UpsertFromEvent("gate-02", ""))

	var device models.Device
	require.NoError(t, impl.DB.Where("device_id = ?", "gate-02").First(&device).Error)
	assert.Equal(t, "Unknown Device", device.Name)
}

func TestGetAllDevicesOrderedByName(t *testing.T) {
	service, _ := newDeviceService(t)

	require.NoError(t, service.UpsertFromEvent("gate-02", "b-door"))
	require.NoError(t, service.UpsertFromEvent("gate-01", "a-door"))

	devices, err := service.GetAllDevices()
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "a-door", devices[0].Name)
	assert.Equal(t, "b-door", devices[1].Name)
}
