package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 创建一个独立的内存数据库并完成迁移。
// 每个测试用唯一的DSN，互不共享数据。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.Device{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		EnvType: "LOCAL",
		DataDir: "mqtt_data",
	}
}

// seedEmployee 插入一个测试员工
func seedEmployee(t *testing.T, db *gorm.DB, personID, idCard, name string) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		PersonID: personID,
		IDCard:   idCard,
		Name:     name,
		Active:   true,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}
