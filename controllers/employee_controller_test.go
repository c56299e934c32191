package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployee(t *testing.T) {
	router, db := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"name":       "张三",
		"id_card":    "1024",
		"person_id":  "7",
		"department": "技术部",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["id"])

	var employee models.Employee
	require.NoError(t, db.Where("person_id = ?", "7").First(&employee).Error)
	assert.Equal(t, "张三", employee.Name)
	assert.True(t, employee.Active)
}

func TestCreateEmployeeMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"name": "张三",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["error"])
}

func TestCreateEmployeeConflict(t *testing.T) {
	router, db := newTestRouter(t)
	seedTestEmployee(t, db, "7", "1024", "张三")

	w, body := doRequest(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"name":      "李四",
		"id_card":   "2048",
		"person_id": "7",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, body["error"])
}

func TestGetEmployees(t *testing.T) {
	router, db := newTestRouter(t)
	seedTestEmployee(t, db, "7", "1024", "张三")
	seedTestEmployee(t, db, "8", "2048", "李四")

	w, _ := doRequest(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var employees []models.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &employees))
	assert.Len(t, employees, 2)
}

func TestGetEmployeeWithRecentAttendance(t *testing.T) {
	router, db := newTestRouter(t)
	employee := seedTestEmployee(t, db, "7", "1024", "张三")
	seedTestRecord(t, db, employee, "rec-001", "2024-05-01 08:00:00", "in")

	w, body := doRequest(t, router, http.MethodGet, "/api/employees/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "张三", body["name"])

	recent, ok := body["recent_attendance"].([]interface{})
	require.True(t, ok)
	assert.Len(t, recent, 1)
}

func TestGetEmployeeNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/employees/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, body["error"])
}

func TestUpdateEmployee(t *testing.T) {
	router, db := newTestRouter(t)
	employee := seedTestEmployee(t, db, "7", "1024", "张三")

	w, _ := doRequest(t, router, http.MethodPut, "/api/employees/1", map[string]interface{}{
		"department": "安保部",
		"active":     false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Employee
	require.NoError(t, db.First(&got, employee.ID).Error)
	assert.Equal(t, "安保部", got.Department)
	assert.False(t, got.Active)
}

func TestUpdateEmployeeEmptyBody(t *testing.T) {
	router, db := newTestRouter(t)
	seedTestEmployee(t, db, "7", "1024", "张三")

	w, body := doRequest(t, router, http.MethodPut, "/api/employees/1", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["error"])
}
