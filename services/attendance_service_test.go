package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceService(t *testing.T) (InterfaceAttendanceService, *AttendanceService) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()
	deviceService := NewDeviceService(db, cfg)
	service := NewAttendanceService(db, cfg, deviceService)
	return service, service.(*AttendanceService)
}

func recPushMessage(info string) *models.RecPushMessage {
	return &models.RecPushMessage{
		Operator: models.OperatorRecPush,
		Info:     json.RawMessage(info),
	}
}

func TestProcessRecPushCreatesRecord(t *testing.T) {
	service, impl := newAttendanceService(t)
	employee := seedEmployee(t, impl.DB, "7", "1024", "张三")

	msg := recPushMessage(`{
		"personId": "7",
		"RecordID": "rec-001",
		"time": "2024-05-01 08:00:00",
		"direction": "in",
		"VerifyStatus": "1",
		"deviceID": "gate-01",
		"facesluiceName": "东门闸机"
	}`)

	record, created, err := service.ProcessRecPush(msg)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, record.EmployeeID)
	assert.Equal(t, employee.ID, *record.EmployeeID)
	assert.Equal(t, "rec-001", record.RecordID)
	assert.Equal(t, "2024-05-01 08:00:00", record.Timestamp)

	// 设备目录同步更新
	var device models.Device
	require.NoError(t, impl.DB.Where("device_id = ?", "gate-01").First(&device).Error)
	assert.Equal(t, "东门闸机", device.Name)
	assert.Equal(t, models.DeviceStatusActive, device.Status)
}

func TestProcessRecPushDuplicateRecordID(t *testing.T) {
	service, impl := newAttendanceService(t)
	seedEmployee(t, impl.DB, "7", "1024", "张三")

	msg := recPushMessage(`{"personId": "7", "RecordID": "rec-001", "time": "2024-05-01 08:00:00", "direction": "in"}`)

	first, created, err := service.ProcessRecPush(msg)
	require.NoError(t, err)
	assert.True(t, created)

	// 相同RecordID重复投递，不产生新行
	second, created, err := service.ProcessRecPush(msg)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, impl.DB.Model(&models.AttendanceRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProcessRecPushEmptyRecordIDAlwaysInserts(t *testing.T) {
	service, impl := newAttendanceService(t)
	seedEmployee(t, impl.DB, "7", "1024", "张三")

	msg := recPushMessage(`{"personId": "7", "time": "2024-05-01 08:00:00", "direction": "in"}`)

	_, created, err := service.ProcessRecPush(msg)
	require.NoError(t, err)
	assert.True(t, created)

	// 空RecordID无法做幂等检查，每次都插入
	_, created, err = service.ProcessRecPush(msg)
	require.NoError(t, err)
	assert.True(t, created)

	var count int64
	require.NoError(t, impl.DB.Model(&models.AttendanceRecord{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestProcessRecPushUnknownPersonKeepsNullLink(t *testing.T) {
	service, _ := newAttendanceService(t)

	msg := recPushMessage(`{"personId": "no-such-person", "RecordID": "rec-002", "time": "2024-05-01 08:00:00", "direction": "in"}`)

	record, created, err := service.ProcessRecPush(msg)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, record.EmployeeID)
	assert.Equal(t, "no-such-person", record.PersonID)
}

func TestProcessRecPushRejectsWrongOperator(t *testing.T) {
	service, _ := newAttendanceService(t)

	msg := &models.RecPushMessage{Operator: "HeartBeat", Info: json.RawMessage(`{}`)}

	_, _, err := service.ProcessRecPush(msg)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAddManualRecord(t *testing.T) {
	service, impl := newAttendanceService(t)
	employee := seedEmployee(t, impl.DB, "7", "1024", "张三")

	record, err := service.AddManualRecord(&ManualAttendanceInput{
		EmployeeID: employee.ID,
		Timestamp:  "2024-05-01 09:00:00",
		Direction:  "in",
	})
	require.NoError(t, err)

	require.NotNil(t, record.EmployeeID)
	assert.Equal(t, employee.ID, *record.EmployeeID)
	assert.Equal(t, "7", record.PersonID)
	assert.Equal(t, "Manual", record.VerifyStatus)
	assert.Equal(t, "Manual Input", record.DeviceName)
	assert.True(t, strings.HasPrefix(record.RecordID, "manual-"))
}

func TestAddManualRecordUnknownEmployee(t *testing.T) {
	service, impl := newAttendanceService(t)

	_, err := service.AddManualRecord(&ManualAttendanceInput{
		EmployeeID: 999,
		Timestamp:  "2024-05-01 09:00:00",
		Direction:  "in",
	})
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	// 失败时不留下任何行
	var count int64
	require.NoError(t, impl.DB.Model(&models.AttendanceRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddManualRecordMissingFields(t *testing.T) {
	service, _ := newAttendanceService(t)

	_, err := service.AddManualRecord(&ManualAttendanceInput{EmployeeID: 1})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestGetRecordsByDate(t *testing.T) {
	service, impl := newAttendanceService(t)
	employee := seedEmployee(t, impl.DB, "7", "1024", "张三")

	for _, ts := range []string{
		"2024-05-01 08:00:00",
		"2024-05-01 17:30:00",
		"2024-05-02 08:05:00",
	} {
		require.NoError(t, impl.DB.Create(&models.AttendanceRecord{
			EmployeeID: &employee.ID,
			PersonID:   employee.PersonID,
			RecordID:   "rec-" + ts,
			Timestamp:  ts,
			Direction:  "in",
		}).Error)
	}

	query := models.PaginationQuery{Page: 1, PerPage: 10}
	records, total, err := service.GetRecordsByDate("2024-05-01", query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)
	// 按时间正序
	assert.Equal(t, "2024-05-01 08:00:00", records[0].Timestamp)
	assert.Equal(t, "2024-05-01 17:30:00", records[1].Timestamp)
	assert.Equal(t, "张三", records[0].EmployeeName)
}

func TestGetRecordsByDateRejectsMalformedDate(t *testing.T) {
	service, _ := newAttendanceService(t)

	query := models.PaginationQuery{Page: 1, PerPage: 10}
	_, _, err := service.GetRecordsByDate("2024-13-40", query)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestGetAllRecordsPagination(t *testing.T) {
	service, impl := newAttendanceService(t)
	employee := seedEmployee(t, impl.DB, "7", "1024", "张三")

	timestamps := []string{
		"2024-05-01 08:00:00",
		"2024-05-01 12:00:00",
		"2024-05-01 17:30:00",
	}
	for _, ts := range timestamps {
		require.NoError(t, impl.DB.Create(&models.AttendanceRecord{
			EmployeeID: &employee.ID,
			PersonID:   employee.PersonID,
			RecordID:   "rec-" + ts,
			Timestamp:  ts,
			Direction:  "in",
		}).Error)
	}

	query := models.PaginationQuery{Page: 1, PerPage: 2}
	records, total, err := service.GetAllRecords(query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	// 按时间倒序
	assert.Equal(t, "2024-05-01 17:30:00", records[0].Timestamp)

	query.Page = 2
	records, _, err = service.GetAllRecords(query)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-05-01 08:00:00", records[0].Timestamp)
}

func TestGetRecordByIDIncludesRawData(t *testing.T) {
	service, impl := newAttendanceService(t)
	seedEmployee(t, impl.DB, "7", "1024", "张三")

	raw := `{"personId":"7","RecordID":"rec-001","time":"2024-05-01 08:00:00","direction":"in"}`
	created, _, err := service.ProcessRecPush(recPushMessage(raw))
	require.NoError(t, err)

	record, err := service.GetRecordByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, raw, record.RawData)
	require.NotNil(t, record.Employee)
	assert.Equal(t, "张三", record.Employee.Name)
}

func TestGetRecordByIDNotFound(t *testing.T) {
	service, _ := newAttendanceService(t)

	_, err := service.GetRecordByID(12345)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
