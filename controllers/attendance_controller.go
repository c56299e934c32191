package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Hieu-vn/Attendance-tracking-API/models"
	"github.com/Hieu-vn/Attendance-tracking-API/services"
	"github.com/Hieu-vn/Attendance-tracking-API/services/container"

	"github.com/gin-gonic/gin"
)

// AttendanceController 处理考勤记录相关的请求
type AttendanceController struct {
	BaseControllerImpl
}

// NewAttendanceController 创建一个新的考勤控制器
func (f *ControllerFactory) NewAttendanceController(ctx *gin.Context) *AttendanceController {
	return &AttendanceController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ManualAttendanceRequest 表示手工补录考勤的请求结构
type ManualAttendanceRequest struct {
	EmployeeID   uint   `json:"employee_id" binding:"required" example:"1"`
	Timestamp    string `json:"timestamp" binding:"required" example:"2024-05-01 08:00:00"`
	Direction    string `json:"direction" binding:"required" example:"in"`
	VerifyStatus string `json:"verify_status" example:"Manual"`
	DeviceName   string `json:"device_name" example:"Manual Input"`
}

// HandleAttendanceFunc 返回一个处理考勤请求的Gin处理函数
func HandleAttendanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAttendanceController(ctx)

		switch method {
		case "getAttendance":
			controller.GetAttendance()
		case "getAttendanceByID":
			controller.GetAttendanceByID()
		case "getAttendanceByEmployee":
			controller.GetAttendanceByEmployee()
		case "getAttendanceByDate":
			controller.GetAttendanceByDate()
		case "getReport":
			controller.GetReport()
		case "addManual":
			controller.AddManual()
		default:
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的方法"})
		}
	}
}

// 获取分页参数
func (c *AttendanceController) paginationQuery() models.PaginationQuery {
	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Context.DefaultQuery("per_page", "10"))

	query := models.PaginationQuery{Page: page, PerPage: perPage}
	query.Normalize()
	return query
}

// 分页响应体
func paginatedResponse(data interface{}, total int64, query models.PaginationQuery) gin.H {
	return gin.H{
		"data":       data,
		"pagination": models.NewPaginationResult(total, query.Page, query.PerPage),
	}
}

// 1. GetAttendance 获取所有考勤记录
// @Summary      Get Attendance Records
// @Description  Get all attendance records with employee info, newest first
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1"
// @Param        per_page query int false "Items per page, default is 10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance [get]
func (c *AttendanceController) GetAttendance() {
	query := c.paginationQuery()

	attendanceService := c.Container.GetAttendanceService()

	records, total, err := attendanceService.GetAllRecords(query)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, paginatedResponse(records, total, query))
}

// 2. GetAttendanceByID 获取单条考勤记录
// @Summary      Get Attendance Record By ID
// @Description  Get one attendance record including its raw payload
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        id path int true "Record ID"
// @Success      200  {object}  models.AttendanceRecord
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /attendance/{id} [get]
func (c *AttendanceController) GetAttendanceByID() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的记录ID"})
		return
	}

	attendanceService := c.Container.GetAttendanceService()

	record, err := attendanceService.GetRecordByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, record)
}

// 3. GetAttendanceByEmployee 获取指定员工的考勤记录
// @Summary      Get Attendance By Employee
// @Description  Get attendance records of one employee, newest first
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID"
// @Param        page query int false "Page number, default is 1"
// @Param        per_page query int false "Items per page, default is 10"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /attendance/employee/{id} [get]
func (c *AttendanceController) GetAttendanceByEmployee() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的员工ID"})
		return
	}

	query := c.paginationQuery()

	attendanceService := c.Container.GetAttendanceService()

	records, total, err := attendanceService.GetRecordsByEmployee(uint(id), query)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, paginatedResponse(records, total, query))
}

// 4. GetAttendanceByDate 获取指定日期的考勤记录。
// 日期校验在查询之前完成，格式错误直接返回400。
// @Summary      Get Attendance By Date
// @Description  Get attendance records of one calendar date (YYYY-MM-DD), oldest first
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        date path string true "Date in YYYY-MM-DD"
// @Param        page query int false "Page number, default is 1"
// @Param        per_page query int false "Items per page, default is 10"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /attendance/date/{date} [get]
func (c *AttendanceController) GetAttendanceByDate() {
	date := c.Context.Param("date")
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的日期格式，应为YYYY-MM-DD"})
		return
	}

	query := c.paginationQuery()

	attendanceService := c.Container.GetAttendanceService()

	records, total, err := attendanceService.GetRecordsByDate(parsed.Format("2006-01-02"), query)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, paginatedResponse(records, total, query))
}

// 5. GetReport 获取考勤报表
// @Summary      Get Attendance Report
// @Description  Per-employee daily attendance summary with work hours
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        start_date query string false "Start date YYYY-MM-DD, defaults to first of month"
// @Param        end_date query string false "End date YYYY-MM-DD, defaults to today"
// @Param        department query string false "Department filter"
// @Param        employee_id query int false "Single employee filter"
// @Success      200  {object}  models.AttendanceReport
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance/report [get]
func (c *AttendanceController) GetReport() {
	employeeID := 0
	if raw := c.Context.Query("employee_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的员工ID"})
			return
		}
		employeeID = id
	}

	query := services.ReportQuery{
		StartDate:  c.Context.Query("start_date"),
		EndDate:    c.Context.Query("end_date"),
		Department: c.Context.Query("department"),
		EmployeeID: uint(employeeID),
	}

	reportService := c.Container.GetReportService()

	report, err := reportService.BuildReport(query)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, report)
}

// 6. AddManual 手工补录一条考勤记录
// @Summary      Add Manual Attendance
// @Description  Insert one attendance record for an existing employee
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        record body ManualAttendanceRequest true "Manual attendance record"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /attendance/manual [post]
func (c *AttendanceController) AddManual() {
	var req ManualAttendanceRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "缺少必填字段: employee_id, timestamp, direction"})
		return
	}

	attendanceService := c.Container.GetAttendanceService()

	record, err := attendanceService.AddManualRecord(&services.ManualAttendanceInput{
		EmployeeID:   req.EmployeeID,
		Timestamp:    req.Timestamp,
		Direction:    req.Direction,
		VerifyStatus: req.VerifyStatus,
		DeviceName:   req.DeviceName,
	})
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"id":      record.ID,
		"message": "考勤记录补录成功",
	})
}
